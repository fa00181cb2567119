package models

import "time"

type UserRole string // Роль пользователя на площадке

const (
	RoleClient UserRole = "client" // Заказчик, публикует заявки
	RoleVendor UserRole = "vendor" // Исполнитель, предлагает услуги
)

// Profile представляет модель профиля пользователя. Роль фиксируется при
// регистрации и не меняется.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      UserRole  `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Actor - идентичность, извлеченная из токена сессии.
type Actor struct {
	ID   string
	Role UserRole
}

// RegisterInput представляет структуру запроса для регистрации.
type RegisterInput struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	FullName string   `json:"fullName"`
	Role     UserRole `json:"role"`
	Phone    string   `json:"phone"`
}

// LoginInput представляет структуру запроса для входа.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse возвращается после успешной регистрации или входа.
type TokenResponse struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}
