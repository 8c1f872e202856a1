package database

import (
	"context"
	"fmt"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) FindParticipantInQuiz(ctx context.Context, quizID, participantID uuid.UUID) (models.Participant, error) {
	var participant models.Participant
	err := s.db.WithContext(ctx).
		Where("id = ? AND quiz_id = ?", participantID, quizID).
		First(&participant).Error
	return participant, notFound(err, models.ErrParticipantNotInQuiz)
}

func (s *Store) FindQuestionInQuiz(ctx context.Context, quizID, questionID uuid.UUID) (models.Question, error) {
	var question models.Question
	err := s.db.WithContext(ctx).
		Where("id = ? AND quiz_id = ?", questionID, quizID).
		First(&question).Error
	return question, notFound(err, models.ErrQuestionNotInQuiz)
}

func (s *Store) FindOptionForQuestion(ctx context.Context, questionID, optionID uuid.UUID) (models.Option, error) {
	var option models.Option
	err := s.db.WithContext(ctx).
		Where("id = ? AND question_id = ?", optionID, questionID).
		First(&option).Error
	return option, notFound(err, models.ErrOptionNotForQuestion)
}

// UpsertAnswer writes the answer for (quiz, participant, question) in one statement,
// replacing the chosen option and correctness if a row already exists.
func (s *Store) UpsertAnswer(ctx context.Context, answer models.Answer) (models.Answer, error) {
	db := s.db.WithContext(ctx)
	err := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "quiz_id"},
				{Name: "participant_id"},
				{Name: "question_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"option_id", "is_correct", "updated_at"}),
		}).
		Create(&answer).Error
	if err != nil {
		return models.Answer{}, fmt.Errorf("upsert answer: %w", err)
	}

	var stored models.Answer
	err = db.Preload("Participant").Preload("Question").Preload("Option").
		Where("quiz_id = ? AND participant_id = ? AND question_id = ?", answer.QuizID, answer.ParticipantID, answer.QuestionID).
		First(&stored).Error
	if err != nil {
		return models.Answer{}, fmt.Errorf("reload answer: %w", err)
	}
	return stored, nil
}

func (s *Store) ResultExists(ctx context.Context, quizID, participantID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Result{}).
		Where("quiz_id = ? AND participant_id = ?", quizID, participantID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check result: %w", err)
	}
	return count > 0, nil
}

// CountAnswers returns how many questions the participant answered and how many were correct.
func (s *Store) CountAnswers(ctx context.Context, quizID, participantID uuid.UUID) (attempted, correct int64, err error) {
	base := s.db.WithContext(ctx).Model(&models.Answer{}).
		Where("quiz_id = ? AND participant_id = ?", quizID, participantID)
	if err = base.Session(&gorm.Session{}).Count(&attempted).Error; err != nil {
		return 0, 0, fmt.Errorf("count answers: %w", err)
	}
	if err = base.Session(&gorm.Session{}).Where("is_correct = ?", true).Count(&correct).Error; err != nil {
		return 0, 0, fmt.Errorf("count correct answers: %w", err)
	}
	return attempted, correct, nil
}

// InsertResultIfAbsent reports false when a result for the pair already existed.
func (s *Store) InsertResultIfAbsent(ctx context.Context, result *models.Result) (bool, error) {
	res := s.db.WithContext(ctx).Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "quiz_id"}, {Name: "participant_id"}},
			DoNothing: true,
		}).
		Create(result)
	if res.Error != nil {
		return false, fmt.Errorf("insert result: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) ListResults(ctx context.Context, quizID uuid.UUID) ([]models.Result, error) {
	var results []models.Result
	err := s.db.WithContext(ctx).
		Preload("Participant").
		Where("quiz_id = ?", quizID).
		Order("correct_answers desc, created_at asc").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}
