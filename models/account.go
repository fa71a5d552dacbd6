package models

// Account is a registered user. Password is compared verbatim and is never
// written to API responses.
type Account struct {
	Email    string `json:"email" gorm:"primaryKey"`
	Password string `json:"password" gorm:"not null"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
}
