package models

import "time"

type RequestStatus string // Статус заявки

const (
	OpenRequest   RequestStatus = "open"   // Заявка открыта, принимает предложения
	ClosedRequest RequestStatus = "closed" // Заявка закрыта после выбора исполнителя
)

// ServiceRequest представляет заявку заказчика на услуги для мероприятия.
// Заявка переходит в closed ровно один раз - при выборе предложения.
type ServiceRequest struct {
	ID              string        `json:"id"`
	ClientID        string        `json:"clientId"`
	EventDate       time.Time     `json:"eventDate"`
	EventLocation   string        `json:"eventLocation"`
	Notes           string        `json:"notes,omitempty"`
	BudgetMin       *float64      `json:"budgetMin,omitempty"`
	BudgetMax       *float64      `json:"budgetMax,omitempty"`
	Status          RequestStatus `json:"status"`
	AwardedVendorID *string       `json:"awardedVendorId,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	Client   *Profile      `json:"client,omitempty"`
	Items    []RequestItem `json:"items,omitempty"`
	BidCount int           `json:"bidCount"`
}

// RequestItem - пара (заявка, категория): набор категорий, которые нужны
// заявке. Создается вместе с заявкой и далее не меняется.
type RequestItem struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"requestId"`
	CategoryID string    `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`

	Category *ServiceCategory `json:"category,omitempty"`
}

// RequestInput представляет структуру запроса для создания заявки.
// EventDate ожидается в формате YYYY-MM-DD.
type RequestInput struct {
	CategoryIDs   []string `json:"categoryIds"`
	EventDate     string   `json:"eventDate"`
	EventLocation string   `json:"eventLocation"`
	BudgetMin     *float64 `json:"budgetMin"`
	BudgetMax     *float64 `json:"budgetMax"`
	Notes         string   `json:"notes"`
}
