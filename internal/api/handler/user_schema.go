package handler

import "github.com/mercadito/commerce-api/internal/core/domain"

// --- Request / Response types ---

type loginRequest struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

type loginResponse struct {
	UsuarioDB *domain.User `json:"usuarioDB"`
	Token     string       `json:"token"`
}

type registerUserRequest struct {
	Nombre string `json:"nombre" validate:"required,solo_letras"`
	Email  string `json:"email"  validate:"required,email"`
	Pass   string `json:"pass"   validate:"required,password_fuerte"`
	Role   string `json:"role"   validate:"omitempty,oneof=ADMIN CLIENT"`
}

type updateUserRequest struct {
	Nombre string `json:"nombre" validate:"omitempty,solo_letras"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Pass   string `json:"pass"   validate:"omitempty,password_fuerte"`
	Role   string `json:"role"   validate:"omitempty,oneof=ADMIN CLIENT"`
}

type mensajeResponse struct {
	Mensaje string `json:"mensaje"`
}
