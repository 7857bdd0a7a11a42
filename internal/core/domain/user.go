package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

var ErrInvalidCredentials = errors.New("Usuario o contraseña inválidos")
var ErrUserNotFound = errors.New("No se encontró el usuario indicado")
var ErrWeakPassword = errors.New("La contraseña debe tener al menos 8 caracteres, incluyendo una letra mayúscula, una letra minúscula, un número y un carácter especial.")

// User models an authenticated actor. The password hash is persisted but
// never serialized back to clients.
type User struct {
	ID           string    `json:"_id,omitempty"`
	Name         string    `json:"nombre"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"activo"`
	CreatedAt    time.Time `json:"date"`
}

// ValidRole reports whether role is one of the accepted role values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleClient
}

const passwordSpecials = "@$!%*?&"

// StrongPassword enforces the registration password policy: at least 8
// characters with one lowercase letter, one uppercase letter, one digit and
// one special character from the @$!%*?& set.
func StrongPassword(pass string) bool {
	if len(pass) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range pass {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// UserUpdate describes a partial update. Nil fields are left untouched.
// Only name, email, role and password are updatable.
type UserUpdate struct {
	Name         *string
	Email        *string
	Role         *string
	PasswordHash *string
}
