package repository

import (
	"context"
	"time"

	"github.com/eventlink/marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository - интерфейс для работы с профилями.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, input models.RegisterInput, passwordHash string) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, string, error)
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// PostgresProfileRepository - реализация ProfileRepository для базы данных.
type PostgresProfileRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresProfileRepository создает новый экземпляр PostgresProfileRepository.
func NewPostgresProfileRepository(db *pgxpool.Pool) *PostgresProfileRepository {
	return &PostgresProfileRepository{DB: db}
}

// CreateProfile создает профиль с зафиксированной ролью.
func (r *PostgresProfileRepository) CreateProfile(ctx context.Context, input models.RegisterInput, passwordHash string) (*models.Profile, error) {
	now := time.Now().UTC()
	newProfile := models.Profile{
		ID:        uuid.New().String(),
		Email:     input.Email,
		FullName:  input.FullName,
		Role:      input.Role,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	insertQuery := `INSERT INTO profiles (id, email, password_hash, full_name, role, phone, created_at, updated_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newProfile.ID,
		newProfile.Email,
		passwordHash,
		newProfile.FullName,
		newProfile.Role,
		newProfile.Phone,
		newProfile.CreatedAt,
		newProfile.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &newProfile, nil
}

// GetProfileByEmail возвращает профиль и хеш пароля по email.
func (r *PostgresProfileRepository) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, string, error) {
	var profile models.Profile
	var passwordHash string
	query := `SELECT id, email, password_hash, full_name, role, phone, created_at, updated_at
	          FROM profiles WHERE email = $1`
	err := r.DB.QueryRow(ctx, query, email).Scan(
		&profile.ID,
		&profile.Email,
		&passwordHash,
		&profile.FullName,
		&profile.Role,
		&profile.Phone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, "", err
	}
	return &profile, passwordHash, nil
}

// GetProfileByID возвращает профиль по идентификатору.
func (r *PostgresProfileRepository) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	query := `SELECT id, email, full_name, role, phone, created_at, updated_at
	          FROM profiles WHERE id = $1`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&profile.ID,
		&profile.Email,
		&profile.FullName,
		&profile.Role,
		&profile.Phone,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// EmailTaken проверяет, занят ли email другим профилем.
func (r *PostgresProfileRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`
	err := r.DB.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
