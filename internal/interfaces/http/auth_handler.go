package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dvdrental-api/internal/application/auth"
	"github.com/jhoicas/dvdrental-api/internal/application/dto"
)

// AuthHandler maneja registro, activación, login, perfil, reset de contraseña y refresh.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Root godoc
// @Summary      Endpoints de autenticación
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/auth [get]
func (h *AuthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Endpoints de autenticación",
		"endpoints": fiber.Map{
			"register":               "/api/auth/register",
			"activate":               "/api/auth/activate",
			"login":                  "/api/auth/login",
			"me":                     "/api/auth/me",
			"password_reset":         "/api/auth/password-reset",
			"password_reset_confirm": "/api/auth/password-reset/confirm",
			"token_refresh":          "/api/auth/token/refresh",
		},
	})
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea la cuenta inactiva y envía el enlace de activación por correo.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, password, confirm_password"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Activate godoc
// @Summary      Activar cuenta
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ActivateRequest  true  "token del correo"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/activate [post]
func (h *AuthHandler) Activate(c *fiber.Ctx) error {
	var in dto.ActivateRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Activate(c.UserContext(), in.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Acepta username o email en el campo username.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RequestPasswordReset godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Description  Responde lo mismo exista o no el email.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.RequestPasswordReset(c.UserContext(), in.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Si existe una cuenta con ese email, se envió un enlace para restablecer la contraseña."})
}

// ConfirmPasswordReset godoc
// @Summary      Confirmar restablecimiento de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetConfirmRequest  true  "token, new_password, confirm_password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/password-reset/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetConfirmRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.ConfirmPasswordReset(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Contraseña restablecida. Ya puedes iniciar sesión con la nueva contraseña."})
}

// Refresh godoc
// @Summary      Renovar access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh"
// @Success      200   {object}  dto.AccessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/token/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Refresh(c.UserContext(), in.Refresh)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
