package repository

import (
	"context"

	"github.com/eventlink/marketplace/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// CategoryRepository - интерфейс для работы со справочником категорий.
type CategoryRepository interface {
	GetCategories(ctx context.Context) ([]models.ServiceCategory, error)
	CategoriesExist(ctx context.Context, categoryIds []string) (bool, error)
}

// PostgresCategoryRepository - реализация CategoryRepository для базы данных.
type PostgresCategoryRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresCategoryRepository создает новый экземпляр PostgresCategoryRepository.
func NewPostgresCategoryRepository(db *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{DB: db}
}

// GetCategories возвращает все категории, отсортированные по имени.
func (r *PostgresCategoryRepository) GetCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	query := `SELECT id, name, description, created_at FROM service_categories ORDER BY name`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.ServiceCategory
	for rows.Next() {
		var category models.ServiceCategory
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// CategoriesExist проверяет, что каждый из переданных идентификаторов
// присутствует в справочнике.
func (r *PostgresCategoryRepository) CategoriesExist(ctx context.Context, categoryIds []string) (bool, error) {
	var count int
	query := `SELECT COUNT(DISTINCT id) FROM service_categories WHERE id = ANY($1)`
	err := r.DB.QueryRow(ctx, query, pq.Array(categoryIds)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == len(uniqueStrings(categoryIds)), nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	var unique []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}
