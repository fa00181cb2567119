package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eventlink/marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ServiceRepository - интерфейс для работы с услугами исполнителей.
type ServiceRepository interface {
	GetAvailableServices(ctx context.Context, limit, offset int, categoryId string) ([]models.Service, error)
	GetVendorServices(ctx context.Context, vendorId string) ([]models.Service, error)
	GetServiceByID(ctx context.Context, serviceId string) (*models.Service, error)
	CreateService(ctx context.Context, vendorId string, input models.ServiceInput) (*models.Service, error)
	EditService(ctx context.Context, serviceId string, updateFields map[string]interface{}) (*models.Service, error)
	SetServiceAvailability(ctx context.Context, serviceId string, available bool) (*models.Service, error)
	DeleteService(ctx context.Context, serviceId string) error
	GetVendorCategoryIDs(ctx context.Context, vendorId string) ([]string, error)
}

// PostgresServiceRepository - реализация ServiceRepository для базы данных.
type PostgresServiceRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresServiceRepository создает новый экземпляр PostgresServiceRepository.
func NewPostgresServiceRepository(db *pgxpool.Pool) *PostgresServiceRepository {
	return &PostgresServiceRepository{DB: db}
}

const serviceColumns = `s.id, s.vendor_id, s.category_id, s.title, s.description, s.price, s.price_unit, s.is_available, s.created_at, s.updated_at`

func scanService(row interface{ Scan(...interface{}) error }, service *models.Service) error {
	return row.Scan(
		&service.ID,
		&service.VendorID,
		&service.CategoryID,
		&service.Title,
		&service.Description,
		&service.Price,
		&service.PriceUnit,
		&service.IsAvailable,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
}

// GetAvailableServices возвращает доступные услуги с категорией и профилем
// исполнителя, опционально фильтруя по категории.
func (r *PostgresServiceRepository) GetAvailableServices(ctx context.Context, limit, offset int, categoryId string) ([]models.Service, error) {
	query := `
		SELECT ` + serviceColumns + `,
		       c.id, c.name, c.description, c.created_at,
		       p.id, p.email, p.full_name, p.role, p.phone, p.created_at, p.updated_at
		FROM services s
		JOIN service_categories c ON c.id = s.category_id
		JOIN profiles p ON p.id = s.vendor_id
		WHERE s.is_available = TRUE`
	var args []interface{}
	argIndex := 1

	if categoryId != "" {
		query += fmt.Sprintf(" AND s.category_id = $%d", argIndex)
		args = append(args, categoryId)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var service models.Service
		var category models.ServiceCategory
		var vendor models.Profile
		if err := rows.Scan(
			&service.ID,
			&service.VendorID,
			&service.CategoryID,
			&service.Title,
			&service.Description,
			&service.Price,
			&service.PriceUnit,
			&service.IsAvailable,
			&service.CreatedAt,
			&service.UpdatedAt,
			&category.ID,
			&category.Name,
			&category.Description,
			&category.CreatedAt,
			&vendor.ID,
			&vendor.Email,
			&vendor.FullName,
			&vendor.Role,
			&vendor.Phone,
			&vendor.CreatedAt,
			&vendor.UpdatedAt); err != nil {
			return nil, err
		}
		service.Category = &category
		service.Vendor = &vendor
		services = append(services, service)
	}
	return services, nil
}

// GetVendorServices возвращает услуги исполнителя с категориями.
func (r *PostgresServiceRepository) GetVendorServices(ctx context.Context, vendorId string) ([]models.Service, error) {
	query := `
		SELECT ` + serviceColumns + `, c.id, c.name, c.description, c.created_at
		FROM services s
		JOIN service_categories c ON c.id = s.category_id
		WHERE s.vendor_id = $1
		ORDER BY s.created_at DESC`
	rows, err := r.DB.Query(ctx, query, vendorId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var service models.Service
		var category models.ServiceCategory
		if err := rows.Scan(
			&service.ID,
			&service.VendorID,
			&service.CategoryID,
			&service.Title,
			&service.Description,
			&service.Price,
			&service.PriceUnit,
			&service.IsAvailable,
			&service.CreatedAt,
			&service.UpdatedAt,
			&category.ID,
			&category.Name,
			&category.Description,
			&category.CreatedAt); err != nil {
			return nil, err
		}
		service.Category = &category
		services = append(services, service)
	}
	return services, nil
}

// GetServiceByID возвращает услугу по идентификатору.
func (r *PostgresServiceRepository) GetServiceByID(ctx context.Context, serviceId string) (*models.Service, error) {
	var service models.Service
	query := `SELECT ` + serviceColumns + ` FROM services s WHERE s.id = $1`
	if err := scanService(r.DB.QueryRow(ctx, query, serviceId), &service); err != nil {
		return nil, err
	}
	return &service, nil
}

// CreateService создает новую услугу исполнителя.
func (r *PostgresServiceRepository) CreateService(ctx context.Context, vendorId string, input models.ServiceInput) (*models.Service, error) {
	now := time.Now().UTC()
	newService := models.Service{
		ID:          uuid.New().String(),
		VendorID:    vendorId,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		PriceUnit:   input.PriceUnit,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	insertQuery := `INSERT INTO services (id, vendor_id, category_id, title, description, price, price_unit, is_available, created_at, updated_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newService.ID,
		newService.VendorID,
		newService.CategoryID,
		newService.Title,
		newService.Description,
		newService.Price,
		newService.PriceUnit,
		newService.IsAvailable,
		newService.CreatedAt,
		newService.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert service: %w", err)
	}
	return &newService, nil
}

// EditService меняет поля услуги.
func (r *PostgresServiceRepository) EditService(ctx context.Context, serviceId string, updateFields map[string]interface{}) (*models.Service, error) {
	var updates []string
	args := []interface{}{serviceId}
	argIndex := 2

	if title, ok := updateFields["title"].(string); ok && title != "" {
		updates = append(updates, fmt.Sprintf("title = $%d", argIndex))
		args = append(args, title)
		argIndex++
	}

	if description, ok := updateFields["description"].(string); ok {
		updates = append(updates, fmt.Sprintf("description = $%d", argIndex))
		args = append(args, description)
		argIndex++
	}

	if price, ok := updateFields["price"].(float64); ok {
		if price <= 0 {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "price must be positive")
		}
		updates = append(updates, fmt.Sprintf("price = $%d", argIndex))
		args = append(args, price)
		argIndex++
	}

	if priceUnit, ok := updateFields["priceUnit"].(string); ok && priceUnit != "" {
		updates = append(updates, fmt.Sprintf("price_unit = $%d", argIndex))
		args = append(args, priceUnit)
		argIndex++
	}

	if len(updates) == 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "no valid fields to update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, time.Now().UTC())

	updateQuery := fmt.Sprintf(
		"UPDATE services s SET %s WHERE id = $1 RETURNING "+serviceColumns,
		strings.Join(updates, ", "))

	var updatedService models.Service
	if err := scanService(r.DB.QueryRow(ctx, updateQuery, args...), &updatedService); err != nil {
		return nil, err
	}
	return &updatedService, nil
}

// SetServiceAvailability включает или выключает доступность услуги.
func (r *PostgresServiceRepository) SetServiceAvailability(ctx context.Context, serviceId string, available bool) (*models.Service, error) {
	query := `UPDATE services s SET is_available = $2, updated_at = $3 WHERE id = $1 RETURNING ` + serviceColumns
	var updatedService models.Service
	if err := scanService(r.DB.QueryRow(ctx, query, serviceId, available, time.Now().UTC()), &updatedService); err != nil {
		return nil, err
	}
	return &updatedService, nil
}

// DeleteService удаляет услугу.
func (r *PostgresServiceRepository) DeleteService(ctx context.Context, serviceId string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM services WHERE id = $1`, serviceId)
	return err
}

// GetVendorCategoryIDs возвращает категории, в которых у исполнителя есть
// хотя бы одна услуга (независимо от доступности).
func (r *PostgresServiceRepository) GetVendorCategoryIDs(ctx context.Context, vendorId string) ([]string, error) {
	query := `SELECT DISTINCT category_id FROM services WHERE vendor_id = $1`
	rows, err := r.DB.Query(ctx, query, vendorId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categoryIds []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		categoryIds = append(categoryIds, id)
	}
	return categoryIds, nil
}
