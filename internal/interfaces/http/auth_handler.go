package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/tu-usuario/inventario-hosteria/internal/application/auth"
	"github.com/tu-usuario/inventario-hosteria/internal/application/dto"
	"github.com/tu-usuario/inventario-hosteria/internal/domain"
	"github.com/tu-usuario/inventario-hosteria/pkg/logger"
)

// AuthHandler maneja registro, emisión de idToken y la sesión de servidor.
type AuthHandler struct {
	uc    *auth.AuthUseCase
	store *session.Store
	log   *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, store *session.Store, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, store: store, log: log}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid payload"})
	}
	uid, err := h.uc.Register(c.Context(), in.Email, in.Password)
	if err != nil {
		if domain.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email already registered"})
		}
		return internalError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: "user registered successfully",
		UID:     uid,
	})
}

// Login godoc
// @Summary      Iniciar sesión (emite idToken)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid payload"})
	}
	idToken, err := h.uc.Login(c.Context(), in.Email, in.Password)
	if err != nil {
		if domain.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
		}
		if errors.Is(err, domain.ErrUserDisabled) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "user account disabled"})
		}
		return internalError(c, h.log, err)
	}
	return c.JSON(dto.LoginResponse{IDToken: idToken})
}

// SessionLogin godoc
// @Summary      Abrir sesión de servidor con un idToken
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SessionLoginRequest  true  "idToken"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /auth/sessionLogin [post]
func (h *AuthHandler) SessionLogin(c *fiber.Ctx) error {
	var in dto.SessionLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid payload"})
	}
	uid, err := h.uc.SessionLogin(c.Context(), in.IDToken)
	if err != nil {
		if domain.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired token"})
		}
		if errors.Is(err, domain.ErrUserDisabled) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "user account disabled"})
		}
		return internalError(c, h.log, err)
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return internalError(c, h.log, err)
	}
	sess.Set(sessionUserKey, uid)
	if err := sess.Save(); err != nil {
		return internalError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"message": "session established"})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err == nil {
		// Destruir una sesión inexistente no es un error: el resultado es el mismo.
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// Status godoc
// @Summary      Estado de la sesión actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.AuthStatusResponse
// @Router       /auth/status [get]
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.JSON(dto.AuthStatusResponse{IsLoggedIn: false})
	}
	uid, _ := sess.Get(sessionUserKey).(string)
	if uid == "" {
		return c.JSON(dto.AuthStatusResponse{IsLoggedIn: false})
	}
	return c.JSON(dto.AuthStatusResponse{IsLoggedIn: true, UserID: uid})
}
