package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversationRepository - интерфейс для работы с тредами переписки.
type ConversationRepository interface {
	UpsertConversation(ctx context.Context, requestId, clientId, vendorId string) error
}

// PostgresConversationRepository - реализация ConversationRepository для базы данных.
type PostgresConversationRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresConversationRepository создает новый экземпляр PostgresConversationRepository.
func NewPostgresConversationRepository(db *pgxpool.Pool) *PostgresConversationRepository {
	return &PostgresConversationRepository{DB: db}
}

// UpsertConversation создает тред по ключу (заявка, заказчик, исполнитель)
// или обновляет отметку последней активности, если тред уже есть.
func (r *PostgresConversationRepository) UpsertConversation(ctx context.Context, requestId, clientId, vendorId string) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO conversations (id, request_id, client_id, vendor_id, last_message_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (request_id, client_id, vendor_id)
		DO UPDATE SET last_message_at = EXCLUDED.last_message_at`
	_, err := r.DB.Exec(ctx, query, uuid.New().String(), requestId, clientId, vendorId, now)
	return err
}
