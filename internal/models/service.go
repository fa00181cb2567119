package models

import "time"

// Service представляет услугу исполнителя. Каждая услуга принадлежит ровно
// одному исполнителю и привязана к одной категории.
type Service struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendorId"`
	CategoryID  string    `json:"categoryId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	PriceUnit   string    `json:"priceUnit"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Category *ServiceCategory `json:"category,omitempty"`
	Vendor   *Profile         `json:"vendor,omitempty"`
}

// ServiceInput представляет структуру запроса для создания услуги.
type ServiceInput struct {
	CategoryID  string  `json:"categoryId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	PriceUnit   string  `json:"priceUnit"`
}
