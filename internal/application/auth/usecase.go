package auth

import (
	"context"
	"regexp"
	"strings"

	"github.com/tu-usuario/inventario-hosteria/internal/domain"
)

// emailPattern validación básica de formato de email (la misma laxitud que el
// sistema anterior: algo@algo.algo).
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLen = 6

// AuthUseCase casos de uso de autenticación contra el proveedor de identidad.
type AuthUseCase struct {
	provider IdentityProvider
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(provider IdentityProvider) *AuthUseCase {
	return &AuthUseCase{provider: provider}
}

// Register valida email y password y crea la cuenta. Devuelve el uid.
func (uc *AuthUseCase) Register(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.NewValidationError("email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return "", domain.NewValidationError("invalid email format")
	}
	if len(password) < minPasswordLen {
		return "", domain.NewValidationError("password must be at least %d characters long", minPasswordLen)
	}
	return uc.provider.CreateUser(ctx, email, password)
}

// Login verifica credenciales y devuelve un idToken para /auth/sessionLogin.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return "", domain.NewValidationError("email and password are required")
	}
	return uc.provider.IssueToken(ctx, strings.TrimSpace(email), password)
}

// SessionLogin verifica el idToken y devuelve el uid a fijar en la sesión.
func (uc *AuthUseCase) SessionLogin(ctx context.Context, idToken string) (string, error) {
	if strings.TrimSpace(idToken) == "" {
		return "", domain.NewValidationError("ID token is required")
	}
	return uc.provider.VerifyToken(ctx, idToken)
}
