package entity

import "time"

// User cuenta registrada en el proveedor de identidad local.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Status       string // active | disabled
	CreatedAt    time.Time
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u *User) IsActive() bool { return u.Status == "active" }
