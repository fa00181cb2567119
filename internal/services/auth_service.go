package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/eventlink/marketplace/internal/middleware"
	"github.com/eventlink/marketplace/internal/models"
	"github.com/eventlink/marketplace/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// SQLSTATE 23505 - нарушение уникального индекса.
const uniqueViolationCode = "23505"

// AuthService отвечает за регистрацию, вход и выдачу токенов сессии.
type AuthService struct {
	Repo      repository.ProfileRepository
	JWTSecret string
	TokenTTL  time.Duration
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo repository.ProfileRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{Repo: repo, JWTSecret: jwtSecret, TokenTTL: tokenTTL}
}

// Register создает профиль с выбранной ролью и возвращает токен сессии.
// Роль после регистрации не меняется.
func (s *AuthService) Register(ctx context.Context, input models.RegisterInput) (*models.TokenResponse, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "valid email is required")
	}
	if len(input.Password) < 6 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "password must be at least 6 characters")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "full name is required")
	}
	if input.Role != models.RoleClient && input.Role != models.RoleVendor {
		return nil, models.NewErrorResponsef(http.StatusBadRequest, "invalid role: %s", input.Role)
	}

	taken, err := s.Repo.EmailTaken(ctx, input.Email)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	if taken {
		return nil, models.NewErrorResponse(http.StatusConflict, "email is already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}

	profile, err := s.Repo.CreateProfile(ctx, input, string(passwordHash))
	if err != nil {
		// Гонка двух регистраций на один email: вставка упирается в
		// уникальный индекс уже после проверки EmailTaken.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, models.NewErrorResponse(http.StatusConflict, "email is already registered")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create profile")
	}

	return s.issueToken(profile)
}

// Login проверяет учетные данные и возвращает токен сессии.
func (s *AuthService) Login(ctx context.Context, input models.LoginInput) (*models.TokenResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "email and password are required")
	}

	profile, passwordHash, err := s.Repo.GetProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid email or password")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(input.Password)); err != nil {
		return nil, models.NewErrorResponse(http.StatusUnauthorized, "invalid email or password")
	}

	return s.issueToken(profile)
}

// GetProfile возвращает сохраненный профиль по идентификатору из токена.
func (s *AuthService) GetProfile(ctx context.Context, profileId string) (*models.Profile, error) {
	profile, err := s.Repo.GetProfileByID(ctx, profileId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "profile not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
	return profile, nil
}

func (s *AuthService) issueToken(profile *models.Profile) (*models.TokenResponse, error) {
	token, err := middleware.GenerateToken(s.JWTSecret, profile, s.TokenTTL)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to issue token")
	}
	return &models.TokenResponse{Token: token, Profile: profile}, nil
}
