package dto

import "time"

// RegisterRequest entrada para registro de cuenta (queda inactiva hasta activar por email).
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150,username"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"omitempty,max=30"`
	LastName        string `json:"last_name" validate:"omitempty,max=30"`
}

// ActivateRequest token recibido en el enlace de activación.
type ActivateRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginRequest username puede ser el username o el email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest solicita el correo de restablecimiento.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirmRequest fija la nueva contraseña con el token recibido por correo.
type PasswordResetConfirmRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// RefreshRequest token de refresco.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
}

// RegisterResponse salida de registro.
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// TokenResponse par access/refresh con el usuario autenticado.
type TokenResponse struct {
	Message string       `json:"message,omitempty"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    UserResponse `json:"user"`
}

// AccessResponse nuevo access token tras refresh.
type AccessResponse struct {
	Access string `json:"access"`
}

// CreateUserRequest alta directa de usuario activo (CLI de administración).
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150,username"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin staff customer"`
	FirstName string `json:"first_name" validate:"omitempty,max=30"`
	LastName  string `json:"last_name" validate:"omitempty,max=30"`
}
