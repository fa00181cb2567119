package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventlink/marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// RequestRepository - интерфейс для работы с заявками.
type RequestRepository interface {
	CreateRequest(ctx context.Context, clientId string, eventDate time.Time, input models.RequestInput) (*models.ServiceRequest, error)
	GetClientRequests(ctx context.Context, clientId string) ([]models.ServiceRequest, error)
	GetOpenRequests(ctx context.Context) ([]models.ServiceRequest, error)
	GetRequestByID(ctx context.Context, requestId string) (*models.ServiceRequest, error)
}

// PostgresRequestRepository - реализация RequestRepository для базы данных.
type PostgresRequestRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresRequestRepository создает новый экземпляр PostgresRequestRepository.
func NewPostgresRequestRepository(db *pgxpool.Pool) *PostgresRequestRepository {
	return &PostgresRequestRepository{DB: db}
}

// CreateRequest создает заявку и по одной строке request_items на каждую
// выбранную категорию. Обе записи выполняются в одной транзакции, чтобы не
// оставлять заявку без категорий при частичном сбое.
func (r *PostgresRequestRepository) CreateRequest(ctx context.Context, clientId string, eventDate time.Time, input models.RequestInput) (*models.ServiceRequest, error) {
	now := time.Now().UTC()
	newRequest := models.ServiceRequest{
		ID:            uuid.New().String(),
		ClientID:      clientId,
		EventDate:     eventDate,
		EventLocation: input.EventLocation,
		Notes:         input.Notes,
		BudgetMin:     input.BudgetMin,
		BudgetMax:     input.BudgetMax,
		Status:        models.OpenRequest,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	insertQuery := `INSERT INTO service_requests (id, client_id, event_date, event_location, notes, budget_min, budget_max, status, created_at, updated_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = tx.Exec(
		ctx,
		insertQuery,
		newRequest.ID,
		newRequest.ClientID,
		newRequest.EventDate,
		newRequest.EventLocation,
		newRequest.Notes,
		newRequest.BudgetMin,
		newRequest.BudgetMax,
		newRequest.Status,
		newRequest.CreatedAt,
		newRequest.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert request: %w", err)
	}

	itemQuery := `INSERT INTO request_items (id, request_id, category_id, created_at)
	              VALUES ($1, $2, $3, $4)`
	for _, categoryId := range input.CategoryIDs {
		item := models.RequestItem{
			ID:         uuid.New().String(),
			RequestID:  newRequest.ID,
			CategoryID: categoryId,
			CreatedAt:  now,
		}
		if _, err = tx.Exec(ctx, itemQuery, item.ID, item.RequestID, item.CategoryID, item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to insert request item: %w", err)
		}
		newRequest.Items = append(newRequest.Items, item)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &newRequest, nil
}

const requestColumns = `r.id, r.client_id, r.event_date, r.event_location, r.notes, r.budget_min, r.budget_max, r.status, r.awarded_vendor_id, r.created_at, r.updated_at`

// GetClientRequests возвращает заявки заказчика с категориями и числом
// предложений, новые сверху.
func (r *PostgresRequestRepository) GetClientRequests(ctx context.Context, clientId string) ([]models.ServiceRequest, error) {
	query := `
		SELECT ` + requestColumns + `, (SELECT COUNT(*) FROM bids b WHERE b.request_id = r.id)
		FROM service_requests r
		WHERE r.client_id = $1
		ORDER BY r.created_at DESC`
	rows, err := r.DB.Query(ctx, query, clientId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.ServiceRequest
	for rows.Next() {
		var request models.ServiceRequest
		if err := rows.Scan(
			&request.ID,
			&request.ClientID,
			&request.EventDate,
			&request.EventLocation,
			&request.Notes,
			&request.BudgetMin,
			&request.BudgetMax,
			&request.Status,
			&request.AwardedVendorID,
			&request.CreatedAt,
			&request.UpdatedAt,
			&request.BidCount); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := r.attachItems(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// GetOpenRequests возвращает все открытые заявки с категориями и профилем
// заказчика, новые сверху.
func (r *PostgresRequestRepository) GetOpenRequests(ctx context.Context) ([]models.ServiceRequest, error) {
	query := `
		SELECT ` + requestColumns + `,
		       p.id, p.email, p.full_name, p.role, p.phone, p.created_at, p.updated_at
		FROM service_requests r
		JOIN profiles p ON p.id = r.client_id
		WHERE r.status = $1
		ORDER BY r.created_at DESC`
	rows, err := r.DB.Query(ctx, query, models.OpenRequest)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.ServiceRequest
	for rows.Next() {
		var request models.ServiceRequest
		var client models.Profile
		if err := rows.Scan(
			&request.ID,
			&request.ClientID,
			&request.EventDate,
			&request.EventLocation,
			&request.Notes,
			&request.BudgetMin,
			&request.BudgetMax,
			&request.Status,
			&request.AwardedVendorID,
			&request.CreatedAt,
			&request.UpdatedAt,
			&client.ID,
			&client.Email,
			&client.FullName,
			&client.Role,
			&client.Phone,
			&client.CreatedAt,
			&client.UpdatedAt); err != nil {
			return nil, err
		}
		request.Client = &client
		requests = append(requests, request)
	}
	if err := r.attachItems(ctx, requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// GetRequestByID возвращает заявку по идентификатору.
func (r *PostgresRequestRepository) GetRequestByID(ctx context.Context, requestId string) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	query := `SELECT ` + requestColumns + ` FROM service_requests r WHERE r.id = $1`
	err := r.DB.QueryRow(ctx, query, requestId).Scan(
		&request.ID,
		&request.ClientID,
		&request.EventDate,
		&request.EventLocation,
		&request.Notes,
		&request.BudgetMin,
		&request.BudgetMax,
		&request.Status,
		&request.AwardedVendorID,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// attachItems подгружает request_items с категориями для набора заявок.
func (r *PostgresRequestRepository) attachItems(ctx context.Context, requests []models.ServiceRequest) error {
	if len(requests) == 0 {
		return nil
	}

	requestIds := make([]string, 0, len(requests))
	byId := make(map[string]*models.ServiceRequest, len(requests))
	for i := range requests {
		requestIds = append(requestIds, requests[i].ID)
		byId[requests[i].ID] = &requests[i]
	}

	query := `
		SELECT i.id, i.request_id, i.category_id, i.created_at,
		       c.id, c.name, c.description, c.created_at
		FROM request_items i
		JOIN service_categories c ON c.id = i.category_id
		WHERE i.request_id = ANY($1)
		ORDER BY c.name`
	rows, err := r.DB.Query(ctx, query, pq.Array(requestIds))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.RequestItem
		var category models.ServiceCategory
		if err := rows.Scan(
			&item.ID,
			&item.RequestID,
			&item.CategoryID,
			&item.CreatedAt,
			&category.ID,
			&category.Name,
			&category.Description,
			&category.CreatedAt); err != nil {
			return err
		}
		item.Category = &category
		if request, ok := byId[item.RequestID]; ok {
			request.Items = append(request.Items, item)
		}
	}
	return nil
}
