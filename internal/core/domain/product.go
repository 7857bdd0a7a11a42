package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("No se encontró el producto indicado")

// DefaultPhoto is the placeholder asset assigned when a product is created
// without uploaded images. Placeholders are shared between products and must
// never be deleted from disk.
const DefaultPhoto = "uploads/default1.jpg"

// MaxPhotos is the maximum number of photo references a product may carry,
// matching the upload pipeline's per-request file limit.
const MaxPhotos = 4

// Product is a catalogue entry. Codigo is unique across all products.
type Product struct {
	ID        string    `json:"_id,omitempty"`
	Code      string    `json:"codigo"`
	Name      string    `json:"nombre"`
	Price     float64   `json:"precio"`
	Stock     int       `json:"stock"`
	Category  string    `json:"categoria"`
	Photos    []string  `json:"fotos"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"date"`
}

// DefaultPhotos returns a fresh placeholder photo list.
func DefaultPhotos() []string {
	photos := make([]string, MaxPhotos)
	for i := range photos {
		photos[i] = DefaultPhoto
	}
	return photos
}

// IsPlaceholderPhoto reports whether path refers to a shared placeholder
// asset rather than an uploaded file.
func IsPlaceholderPhoto(path string) bool {
	return path == DefaultPhoto
}

// ProductUpdate describes a partial update. Nil fields are left untouched.
// A non-nil Photos slice replaces the photo list wholesale.
type ProductUpdate struct {
	Code     *string
	Name     *string
	Price    *float64
	Stock    *int
	Category *string
	Photos   []string
	Active   *bool
}
