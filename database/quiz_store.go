package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func preloadQuiz(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Administrator").
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.created_at asc") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.created_at asc") }).
		Preload("Participants", func(db *gorm.DB) *gorm.DB { return db.Order("participants.created_at asc") })
}

// CreateQuiz inserts the quiz with its questions, options and participants atomically.
func (s *Store) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Administrator", "Answers").Create(quiz).Error
	})
	if err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	return nil
}

func (s *Store) ListQuizzes(ctx context.Context, administratorID uuid.UUID) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := preloadQuiz(s.db.WithContext(ctx)).
		Where("administrator_id = ?", administratorID).
		Order("date desc, created_at desc").
		Find(&quizzes).Error
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *Store) FindQuiz(ctx context.Context, quizID uuid.UUID) (models.Quiz, error) {
	var quiz models.Quiz
	err := preloadQuiz(s.db.WithContext(ctx)).First(&quiz, "id = ?", quizID).Error
	return quiz, notFound(err, models.ErrQuizNotFound)
}

// FindQuizForAdministrator treats quizzes owned by someone else as missing.
func (s *Store) FindQuizForAdministrator(ctx context.Context, administratorID, quizID uuid.UUID) (models.Quiz, error) {
	var quiz models.Quiz
	err := preloadQuiz(s.db.WithContext(ctx)).
		Where("id = ? AND administrator_id = ?", quizID, administratorID).
		First(&quiz).Error
	return quiz, notFound(err, models.ErrQuizNotFound)
}

// IsQuizPublished reads only the publish flag.
func (s *Store) IsQuizPublished(ctx context.Context, quizID uuid.UUID) (bool, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).Select("id", "is_published").First(&quiz, "id = ?", quizID).Error
	if err != nil {
		return false, notFound(err, models.ErrQuizNotFound)
	}
	return quiz.IsPublished, nil
}

func (s *Store) UpdateQuiz(ctx context.Context, quiz *models.Quiz) error {
	err := s.db.WithContext(ctx).Model(quiz).
		Select("title", "description", "instructions", "duration", "date").
		Updates(quiz).Error
	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}
	return nil
}

func (s *Store) SetQuizPublished(ctx context.Context, quizID uuid.UUID, published bool) error {
	res := s.db.WithContext(ctx).Model(&models.Quiz{}).Where("id = ?", quizID).Update("is_published", published)
	if res.Error != nil {
		return fmt.Errorf("set quiz published: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrQuizNotFound
	}
	return nil
}

// DeleteQuiz removes the quiz with its questions, options, answers and results.
// Participants are kept but detached.
func (s *Store) DeleteQuiz(ctx context.Context, quizID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Result{}).Error; err != nil {
			return err
		}
		questionIDs := tx.Model(&models.Question{}).Select("id").Where("quiz_id = ?", quizID)
		if err := tx.Where("question_id IN (?)", questionIDs).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Participant{}).Where("quiz_id = ?", quizID).Update("quiz_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", quizID).Delete(&models.Quiz{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrQuizNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrQuizNotFound) {
			return err
		}
		return fmt.Errorf("delete quiz: %w", err)
	}
	return nil
}

func (s *Store) AddParticipants(ctx context.Context, quizID uuid.UUID, participants []models.Participant) ([]models.Participant, error) {
	if len(participants) == 0 {
		return participants, nil
	}
	for i := range participants {
		participants[i].QuizID = &quizID
	}
	if err := s.db.WithContext(ctx).Create(&participants).Error; err != nil {
		return nil, fmt.Errorf("add participants: %w", err)
	}
	return participants, nil
}

func (s *Store) ListAnswers(ctx context.Context, quizID uuid.UUID) ([]models.Answer, error) {
	var answers []models.Answer
	err := s.db.WithContext(ctx).
		Preload("Participant").
		Preload("Question").
		Preload("Option").
		Where("quiz_id = ?", quizID).
		Order("created_at asc").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

// MarkQuizzesCompletedBefore flags published quizzes dated before cutoff as completed.
func (s *Store) MarkQuizzesCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Quiz{}).
		Where("is_published = ? AND is_completed = ? AND date < ?", true, false, cutoff).
		Update("is_completed", true)
	if res.Error != nil {
		return 0, fmt.Errorf("mark quizzes completed: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) Stats(ctx context.Context, administratorID uuid.UUID) (models.Stats, error) {
	var stats models.Stats
	db := s.db.WithContext(ctx)

	owned := func() *gorm.DB {
		return db.Model(&models.Quiz{}).Where("administrator_id = ?", administratorID)
	}
	answersOnOwned := func() *gorm.DB {
		return db.Model(&models.Answer{}).
			Joins("JOIN quizzes ON quizzes.id = answers.quiz_id").
			Where("quizzes.administrator_id = ?", administratorID)
	}
	participantsOnOwned := func() *gorm.DB {
		return db.Model(&models.Participant{}).
			Joins("JOIN quizzes ON quizzes.id = participants.quiz_id").
			Where("quizzes.administrator_id = ?", administratorID)
	}

	counts := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"tests created", owned(), &stats.TotalTestsCreated},
		{"tests published", owned().Where("is_published = ?", true), &stats.TotalTestsPublished},
		{"tests unpublished", owned().Where("is_published = ?", false), &stats.TotalTestsUnpublished},
		{"tests completed", owned().Where("is_completed = ?", true), &stats.TotalTestsCompleted},
		{"tests taken", db.Model(&models.Result{}).
			Joins("JOIN quizzes ON quizzes.id = results.quiz_id").
			Where("quizzes.administrator_id = ?", administratorID), &stats.TotalTestsTaken},
		{"participants created", participantsOnOwned(), &stats.TotalParticipantsCreated},
		{"participants taken", answersOnOwned().Distinct("answers.participant_id"), &stats.TotalParticipantsTakenTests},
		{"correct answers", answersOnOwned().Where("answers.is_correct = ?", true), &stats.TotalQuestionsAnsweredCorrectly},
		{"participants not taken", participantsOnOwned().
			Where("NOT EXISTS (SELECT 1 FROM answers WHERE answers.participant_id = participants.id AND answers.quiz_id = participants.quiz_id)"),
			&stats.TotalParticipantsNotTakenTests},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return models.Stats{}, fmt.Errorf("count %s: %w", c.name, err)
		}
	}
	return stats, nil
}
