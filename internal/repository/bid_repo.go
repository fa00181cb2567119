package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventlink/marketplace/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository - интерфейс для работы с предложениями.
type BidRepository interface {
	CreateBid(ctx context.Context, vendorId string, input models.BidInput) (*models.Bid, error)
	GetRequestBids(ctx context.Context, requestId string) ([]models.Bid, error)
	GetVendorBids(ctx context.Context, vendorId string) ([]models.Bid, error)
	GetBidByID(ctx context.Context, bidId string) (*models.Bid, error)
	HasVendorBid(ctx context.Context, requestId, vendorId string) (bool, error)
	HasAwardedBid(ctx context.Context, requestId string) (bool, error)
	WithdrawBid(ctx context.Context, bidId string) (*models.Bid, error)
	AwardBid(ctx context.Context, bid *models.Bid) error
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

const bidColumns = `b.id, b.request_id, b.vendor_id, b.service_id, b.bid_amount, b.delivery_days, b.message, b.status, b.awarded_at, b.created_at, b.updated_at`

// CreateBid создает новое предложение со статусом pending.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, vendorId string, input models.BidInput) (*models.Bid, error) {
	now := time.Now().UTC()
	newBid := models.Bid{
		ID:           uuid.New().String(),
		RequestID:    input.RequestID,
		VendorID:     vendorId,
		ServiceID:    input.ServiceID,
		BidAmount:    input.BidAmount,
		DeliveryDays: input.DeliveryDays,
		Message:      input.Message,
		Status:       models.PendingBid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	insertQuery := `INSERT INTO bids (id, request_id, vendor_id, service_id, bid_amount, delivery_days, message, status, created_at, updated_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newBid.ID,
		newBid.RequestID,
		newBid.VendorID,
		newBid.ServiceID,
		newBid.BidAmount,
		newBid.DeliveryDays,
		newBid.Message,
		newBid.Status,
		newBid.CreatedAt,
		newBid.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert bid: %w", err)
	}
	return &newBid, nil
}

// GetRequestBids возвращает предложения по заявке с профилем исполнителя и
// услугой, новые сверху.
func (r *PostgresBidRepository) GetRequestBids(ctx context.Context, requestId string) ([]models.Bid, error) {
	query := `
		SELECT ` + bidColumns + `,
		       p.id, p.email, p.full_name, p.role, p.phone, p.created_at, p.updated_at,
		       s.id, s.vendor_id, s.category_id, s.title, s.description, s.price, s.price_unit, s.is_available, s.created_at, s.updated_at
		FROM bids b
		JOIN profiles p ON p.id = b.vendor_id
		JOIN services s ON s.id = b.service_id
		WHERE b.request_id = $1
		ORDER BY b.created_at DESC`
	rows, err := r.DB.Query(ctx, query, requestId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		var bid models.Bid
		var vendor models.Profile
		var service models.Service
		if err := rows.Scan(
			&bid.ID,
			&bid.RequestID,
			&bid.VendorID,
			&bid.ServiceID,
			&bid.BidAmount,
			&bid.DeliveryDays,
			&bid.Message,
			&bid.Status,
			&bid.AwardedAt,
			&bid.CreatedAt,
			&bid.UpdatedAt,
			&vendor.ID,
			&vendor.Email,
			&vendor.FullName,
			&vendor.Role,
			&vendor.Phone,
			&vendor.CreatedAt,
			&vendor.UpdatedAt,
			&service.ID,
			&service.VendorID,
			&service.CategoryID,
			&service.Title,
			&service.Description,
			&service.Price,
			&service.PriceUnit,
			&service.IsAvailable,
			&service.CreatedAt,
			&service.UpdatedAt); err != nil {
			return nil, err
		}
		bid.Vendor = &vendor
		bid.Service = &service
		bids = append(bids, bid)
	}
	return bids, nil
}

// GetVendorBids возвращает предложения исполнителя, новые сверху.
func (r *PostgresBidRepository) GetVendorBids(ctx context.Context, vendorId string) ([]models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bids b WHERE b.vendor_id = $1 ORDER BY b.created_at DESC`
	rows, err := r.DB.Query(ctx, query, vendorId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		var bid models.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.RequestID,
			&bid.VendorID,
			&bid.ServiceID,
			&bid.BidAmount,
			&bid.DeliveryDays,
			&bid.Message,
			&bid.Status,
			&bid.AwardedAt,
			&bid.CreatedAt,
			&bid.UpdatedAt); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, nil
}

// GetBidByID возвращает предложение по идентификатору.
func (r *PostgresBidRepository) GetBidByID(ctx context.Context, bidId string) (*models.Bid, error) {
	var bid models.Bid
	query := `SELECT ` + bidColumns + ` FROM bids b WHERE b.id = $1`
	err := r.DB.QueryRow(ctx, query, bidId).Scan(
		&bid.ID,
		&bid.RequestID,
		&bid.VendorID,
		&bid.ServiceID,
		&bid.BidAmount,
		&bid.DeliveryDays,
		&bid.Message,
		&bid.Status,
		&bid.AwardedAt,
		&bid.CreatedAt,
		&bid.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// HasVendorBid проверяет, подавал ли исполнитель предложение по заявке.
func (r *PostgresBidRepository) HasVendorBid(ctx context.Context, requestId, vendorId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bids WHERE request_id = $1 AND vendor_id = $2)`
	err := r.DB.QueryRow(ctx, query, requestId, vendorId).Scan(&exists)
	return exists, err
}

// HasAwardedBid проверяет, выбрано ли уже предложение по заявке.
func (r *PostgresBidRepository) HasAwardedBid(ctx context.Context, requestId string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM bids WHERE request_id = $1 AND status = $2)`
	err := r.DB.QueryRow(ctx, query, requestId, models.AwardedBid).Scan(&exists)
	return exists, err
}

// WithdrawBid переводит предложение в статус withdrawn.
func (r *PostgresBidRepository) WithdrawBid(ctx context.Context, bidId string) (*models.Bid, error) {
	query := `UPDATE bids b SET status = $2, updated_at = $3 WHERE id = $1 RETURNING ` + bidColumns
	var bid models.Bid
	err := r.DB.QueryRow(ctx, query, bidId, models.WithdrawnBid, time.Now().UTC()).Scan(
		&bid.ID,
		&bid.RequestID,
		&bid.VendorID,
		&bid.ServiceID,
		&bid.BidAmount,
		&bid.DeliveryDays,
		&bid.Message,
		&bid.Status,
		&bid.AwardedAt,
		&bid.CreatedAt,
		&bid.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// AwardBid выполняет выбор предложения: само предложение становится awarded
// с отметкой времени, заявка закрывается с выбранным исполнителем, все
// остальные предложения по заявке переводятся в rejected. Три записи
// выполняются в одной транзакции.
func (r *PostgresBidRepository) AwardBid(ctx context.Context, bid *models.Bid) error {
	now := time.Now().UTC()

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	awardQuery := `UPDATE bids SET status = $2, awarded_at = $3, updated_at = $3 WHERE id = $1`
	if _, err = tx.Exec(ctx, awardQuery, bid.ID, models.AwardedBid, now); err != nil {
		return fmt.Errorf("failed to award bid: %w", err)
	}

	closeQuery := `UPDATE service_requests SET awarded_vendor_id = $2, status = $3, updated_at = $4 WHERE id = $1`
	if _, err = tx.Exec(ctx, closeQuery, bid.RequestID, bid.VendorID, models.ClosedRequest, now); err != nil {
		return fmt.Errorf("failed to close request: %w", err)
	}

	rejectQuery := `UPDATE bids SET status = $3, updated_at = $4 WHERE request_id = $1 AND id <> $2`
	if _, err = tx.Exec(ctx, rejectQuery, bid.RequestID, bid.ID, models.RejectedBid, now); err != nil {
		return fmt.Errorf("failed to reject other bids: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return err
	}

	bid.Status = models.AwardedBid
	bid.AwardedAt = &now
	bid.UpdatedAt = now
	return nil
}
