package models

import "time"

type BidStatus string // Статус предложения

const (
	PendingBid   BidStatus = "pending"   // Предложение подано и ждет решения
	AwardedBid   BidStatus = "awarded"   // Предложение выбрано заказчиком
	RejectedBid  BidStatus = "rejected"  // Предложение отклонено при выборе другого
	WithdrawnBid BidStatus = "withdrawn" // Предложение отозвано исполнителем
)

// Bid представляет предложение исполнителя по открытой заявке. AwardedAt
// заполняется только у предложения со статусом awarded.
type Bid struct {
	ID           string     `json:"id"`
	RequestID    string     `json:"requestId"`
	VendorID     string     `json:"vendorId"`
	ServiceID    string     `json:"serviceId"`
	BidAmount    float64    `json:"bidAmount"`
	DeliveryDays *int       `json:"deliveryDays,omitempty"`
	Message      string     `json:"message"`
	Status       BidStatus  `json:"status"`
	AwardedAt    *time.Time `json:"awardedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Vendor  *Profile `json:"vendor,omitempty"`
	Service *Service `json:"service,omitempty"`

	// IsLowest - подсказка для отображения: минимальная сумма среди
	// предложений заявки, пока ни одно не выбрано. На выбор не влияет.
	IsLowest bool `json:"isLowest"`
}

// BidInput представляет структуру запроса для подачи предложения.
type BidInput struct {
	RequestID    string  `json:"requestId"`
	ServiceID    string  `json:"serviceId"`
	BidAmount    float64 `json:"bidAmount"`
	DeliveryDays *int    `json:"deliveryDays"`
	Message      string  `json:"message"`
}
