package dto

// Los nombres de campo JSON siguen el contrato camelCase que ya consume el
// frontend existente, no el snake_case habitual del equipo.

// RegisterRequest body para POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse respuesta de registro.
type RegisterResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid"`
}

// LoginRequest body para POST /auth/login (emisión de idToken).
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse idToken a intercambiar en /auth/sessionLogin.
type LoginResponse struct {
	IDToken string `json:"idToken"`
}

// SessionLoginRequest body para POST /auth/sessionLogin.
type SessionLoginRequest struct {
	IDToken string `json:"idToken"`
}

// AuthStatusResponse respuesta de GET /auth/status.
type AuthStatusResponse struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	UserID     string `json:"user_id,omitempty"`
}
