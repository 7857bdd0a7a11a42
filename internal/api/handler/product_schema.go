package handler

// createProductRequest binds multipart form fields (or JSON, for clients not
// sending photos) for product creation.
type createProductRequest struct {
	Codigo    string  `form:"codigo"    json:"codigo"    validate:"required,codigo"`
	Nombre    string  `form:"nombre"    json:"nombre"    validate:"required"`
	Precio    float64 `form:"precio"    json:"precio"    validate:"required"`
	Stock     int     `form:"stock"     json:"stock"     validate:"required"`
	Categoria string  `form:"categoria" json:"categoria" validate:"required,solo_letras"`
}

type updateProductRequest struct {
	Codigo    string   `form:"codigo"    json:"codigo"    validate:"omitempty,codigo"`
	Nombre    string   `form:"nombre"    json:"nombre"`
	Precio    *float64 `form:"precio"    json:"precio"`
	Stock     *int     `form:"stock"     json:"stock"`
	Categoria string   `form:"categoria" json:"categoria" validate:"omitempty,solo_letras"`
}

// patchProductRequest carries the activo-flag toggle, the only field PATCH
// may change.
type patchProductRequest struct {
	Activo *bool `json:"activo" validate:"required"`
}
