package auth

import "context"

// IdentityProvider es el colaborador externo que convierte credenciales
// verificadas en identificadores opacos de usuario. Fallos tipados:
// domain.ErrEmailAlreadyExists, domain.ErrInvalidCredentials,
// domain.ErrInvalidToken, domain.ErrUserDisabled.
type IdentityProvider interface {
	// CreateUser registra una cuenta y devuelve su identificador.
	CreateUser(ctx context.Context, email, password string) (string, error)
	// IssueToken verifica credenciales y emite un idToken de corta vida.
	IssueToken(ctx context.Context, email, password string) (string, error)
	// VerifyToken valida un idToken y devuelve el identificador del usuario.
	VerifyToken(ctx context.Context, idToken string) (string, error)
}
