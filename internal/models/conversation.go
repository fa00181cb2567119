package models

import "time"

// Conversation - тред переписки, уникальный по (заявка, заказчик,
// исполнитель). Создается upsert-ом при подаче предложения.
type Conversation struct {
	ID            string    `json:"id"`
	RequestID     string    `json:"requestId"`
	ClientID      string    `json:"clientId"`
	VendorID      string    `json:"vendorId"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Message - сообщение в треде. Сама переписка пока не реализована, тип
// описан для схемы.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}
