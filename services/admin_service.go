package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/aptitude_quiz/models"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 72 * time.Hour

type SignUpInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name  string `json:"name" validate:"required"`
	About string `json:"about"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type AdminService struct {
	store     AdministratorStore
	jwtSecret []byte
	now       func() time.Time
}

func NewAdminService(store AdministratorStore, jwtSecret string) *AdminService {
	return &AdminService{store: store, jwtSecret: []byte(jwtSecret), now: time.Now}
}

func (s *AdminService) SignUp(ctx context.Context, in SignUpInput) (models.Administrator, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return models.Administrator{}, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	if _, err := s.store.FindAdministratorByEmail(ctx, in.Email); err == nil {
		return models.Administrator{}, models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrAdministratorNotFound) {
		return models.Administrator{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Administrator{}, fmt.Errorf("hash password: %w", err)
	}

	admin := models.Administrator{Name: in.Name, Email: in.Email, Password: string(hashedPassword)}
	if err := s.store.CreateAdministrator(ctx, &admin); err != nil {
		return models.Administrator{}, err
	}
	return admin, nil
}

// SignIn checks the credentials and issues a signed session token.
func (s *AdminService) SignIn(ctx context.Context, in SignInInput) (string, models.Administrator, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Struct(in); err != nil {
		return "", models.Administrator{}, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	admin, err := s.store.FindAdministratorByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, models.ErrAdministratorNotFound) {
			return "", models.Administrator{}, models.ErrInvalidCredentials
		}
		return "", models.Administrator{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(in.Password)); err != nil {
		return "", models.Administrator{}, models.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": admin.ID.String(),
		"role":    models.RoleAdministrator,
		"exp":     s.now().Add(tokenLifetime).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", models.Administrator{}, fmt.Errorf("sign token: %w", err)
	}
	return token, admin, nil
}

func (s *AdminService) ListAdministrators(ctx context.Context) ([]models.Administrator, error) {
	return s.store.ListAdministrators(ctx)
}

func (s *AdminService) Profile(ctx context.Context, p models.Principal) (models.Administrator, error) {
	return s.store.FindAdministrator(ctx, p.AdministratorID)
}

func (s *AdminService) UpdateProfile(ctx context.Context, p models.Principal, in UpdateProfileInput) (models.Administrator, error) {
	if err := validate.Struct(in); err != nil {
		return models.Administrator{}, fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}
	return s.store.UpdateAdministratorProfile(ctx, p.AdministratorID, in.Name, in.About)
}

func (s *AdminService) ChangePassword(ctx context.Context, p models.Principal, in ChangePasswordInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", models.ErrValidation, err.Error())
	}

	admin, err := s.store.FindAdministrator(ctx, p.AdministratorID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(in.OldPassword)); err != nil {
		return models.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdateAdministratorPassword(ctx, admin.ID, string(hashedPassword))
}
