package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/anjiri1684/aptitude_quiz/llm"
	"github.com/anjiri1684/aptitude_quiz/models"
)

// SourceTokenBudget caps how much source text is sent to the language model.
const SourceTokenBudget = 400

type GenerateQuestionsInput struct {
	Text              string `json:"text" validate:"required"`
	NumberOfQuestions int    `json:"number_of_questions" validate:"required,gt=0,lte=50"`
	Difficulty        int    `json:"difficulty" validate:"required,min=1,max=5"`
}

type QuestionGenerator struct {
	completer llm.Completer
}

func NewQuestionGenerator(completer llm.Completer) *QuestionGenerator {
	return &QuestionGenerator{completer: completer}
}

// Generate asks the language model for draft questions. Nothing is stored.
func (g *QuestionGenerator) Generate(ctx context.Context, in GenerateQuestionsInput) ([]models.GeneratedQuestion, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}
	if g.completer == nil {
		return nil, fmt.Errorf("%w: no language model configured", models.ErrGenerationUnavailable)
	}

	source := TrimTextToTokens(in.Text, SourceTokenBudget)
	if source == "" {
		return nil, fmt.Errorf("%w: text has no words within the %d character budget", models.ErrValidation, SourceTokenBudget)
	}

	raw, err := g.completer.Complete(ctx, BuildQuestionPrompt(source, in.NumberOfQuestions, in.Difficulty))
	if err != nil {
		log.Printf("🔥 Language model request failed: %v", err)
		return nil, fmt.Errorf("%w: %w", models.ErrGenerationUnavailable, err)
	}

	questions, err := ParseGeneratedQuestions(raw)
	if err != nil {
		log.Printf("🔥 Language model returned malformed questions: %v", err)
		return nil, err
	}
	return questions, nil
}

func BuildQuestionPrompt(text string, count, difficulty int) string {
	return fmt.Sprintf(`Using the text below, generate exactly %d multiple-choice questions for an aptitude test.
The difficulty must be %d on a scale from 1 (easiest) to 5 (hardest).
Each question must have exactly four options and exactly one correct option.
Place the correct option at a random position, chosen independently for every question.
Respond with only a JSON array and no other text, in this shape:
[{"text": "question", "options": [{"option": "answer", "is_correct": false}]}]

Text:
%s`, count, difficulty, text)
}

// ParseGeneratedQuestions decodes model output. Every question needs text, at
// least two options and exactly one correct option.
func ParseGeneratedQuestions(raw string) ([]models.GeneratedQuestion, error) {
	body := stripCodeFence(raw)

	var questions []models.GeneratedQuestion
	if err := json.Unmarshal([]byte(body), &questions); err != nil {
		var wrapped struct {
			Questions []models.GeneratedQuestion `json:"questions"`
		}
		if werr := json.Unmarshal([]byte(body), &wrapped); werr != nil || wrapped.Questions == nil {
			return nil, fmt.Errorf("%w: %v", models.ErrGenerationMalformed, err)
		}
		questions = wrapped.Questions
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions returned", models.ErrGenerationMalformed)
	}

	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("%w: question %d has no text", models.ErrGenerationMalformed, i+1)
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d has %d options", models.ErrGenerationMalformed, i+1, len(q.Options))
		}
		correct := 0
		for _, o := range q.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return nil, fmt.Errorf("%w: question %d has %d correct options", models.ErrGenerationMalformed, i+1, correct)
		}
	}
	return questions, nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
