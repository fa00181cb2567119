package models

import "time"

// ServiceCategory - справочник категорий услуг (кейтеринг, фотография и т.д.).
type ServiceCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
