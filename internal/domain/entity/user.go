package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// User usuario de la API (tabla app_user). Las cuentas nuevas se crean inactivas hasta activar por email.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt
	FirstName    string
	LastName     string
	Role         string // admin, staff, customer
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
	UpdatedAt    time.Time
}

// DisplayName nombre para saludos: first_name o, si falta, username.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// IsStaffOrAdmin indica si el rol puede escribir catálogo y operar alquileres y pagos.
func IsStaffOrAdmin(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff || role == RoleCustomer
}
