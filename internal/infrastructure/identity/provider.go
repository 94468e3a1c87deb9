// Package identity implementa el proveedor de identidad local: cuentas con
// hash bcrypt en la tabla users e idTokens JWT de corta vida. Sustituye al
// servicio de identidad gestionado manteniendo el mismo contrato
// (auth.IdentityProvider) y los mismos fallos tipados.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/inventario-hosteria/internal/application/auth"
	"github.com/tu-usuario/inventario-hosteria/internal/domain"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/entity"
	"github.com/tu-usuario/inventario-hosteria/internal/domain/repository"
	"github.com/tu-usuario/inventario-hosteria/pkg/config"
	"github.com/tu-usuario/inventario-hosteria/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

var _ auth.IdentityProvider = (*Provider)(nil)

// Provider proveedor de identidad respaldado por la tabla users.
type Provider struct {
	users repository.UserRepository
	cfg   config.TokenConfig
}

// NewProvider construye el proveedor.
func NewProvider(users repository.UserRepository, cfg config.TokenConfig) *Provider {
	return &Provider{users: users, cfg: cfg}
}

// CreateUser registra la cuenta y devuelve su identificador.
// domain.ErrEmailAlreadyExists si el email ya está registrado.
func (p *Provider) CreateUser(ctx context.Context, email, password string) (string, error) {
	existing, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Status:       "active",
		CreatedAt:    time.Now(),
	}
	if err := p.users.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// IssueToken verifica credenciales y emite un idToken.
// domain.ErrInvalidCredentials si email o password no cuadran;
// domain.ErrUserDisabled si la cuenta está deshabilitada.
func (p *Provider) IssueToken(ctx context.Context, email, password string) (string, error) {
	user, err := p.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return "", domain.ErrUserDisabled
	}
	return token.Generate(p.cfg.Secret, user.ID, p.cfg.Issuer, p.cfg.Expiration)
}

// VerifyToken valida el idToken y devuelve el uid. La cuenta se comprueba en
// cada verificación: un token de una cuenta borrada o deshabilitada no sirve
// para abrir sesión.
func (p *Provider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	uid, err := token.Parse(p.cfg.Secret, idToken)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	user, err := p.users.GetByID(ctx, uid)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrInvalidToken
	}
	if !user.IsActive() {
		return "", domain.ErrUserDisabled
	}
	return uid, nil
}
