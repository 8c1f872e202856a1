package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the gorm-backed repository for every quiz aggregate.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) CreateAdministrator(ctx context.Context, admin *models.Administrator) error {
	err := s.db.WithContext(ctx).Create(admin).Error
	if err != nil {
		if isDuplicate(err) {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("create administrator: %w", err)
	}
	return nil
}

func (s *Store) FindAdministratorByEmail(ctx context.Context, email string) (models.Administrator, error) {
	var admin models.Administrator
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	return admin, notFound(err, models.ErrAdministratorNotFound)
}

func (s *Store) FindAdministrator(ctx context.Context, id uuid.UUID) (models.Administrator, error) {
	var admin models.Administrator
	err := s.db.WithContext(ctx).First(&admin, "id = ?", id).Error
	return admin, notFound(err, models.ErrAdministratorNotFound)
}

func (s *Store) ListAdministrators(ctx context.Context) ([]models.Administrator, error) {
	var admins []models.Administrator
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&admins).Error; err != nil {
		return nil, fmt.Errorf("list administrators: %w", err)
	}
	return admins, nil
}

func (s *Store) UpdateAdministratorProfile(ctx context.Context, id uuid.UUID, name, about string) (models.Administrator, error) {
	res := s.db.WithContext(ctx).Model(&models.Administrator{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "about": about})
	if res.Error != nil {
		return models.Administrator{}, fmt.Errorf("update administrator: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.Administrator{}, models.ErrAdministratorNotFound
	}
	return s.FindAdministrator(ctx, id)
}

func (s *Store) UpdateAdministratorPassword(ctx context.Context, id uuid.UUID, hash string) error {
	res := s.db.WithContext(ctx).Model(&models.Administrator{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrAdministratorNotFound
	}
	return nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
