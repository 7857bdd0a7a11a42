package domain

import (
	"errors"
	"sort"
	"strings"
)

// Upload pipeline rejections. Any of these aborts the request before
// anything is persisted.
var ErrUploadType = errors.New("Solo se permiten archivos de imagen (jpeg, jpg, png)")
var ErrUploadTooLarge = errors.New("El archivo supera el tamaño máximo de 5MB")
var ErrUploadTooMany = errors.New("Se permiten máximo 4 archivos por solicitud")

// FieldErrors is a per-field validation error map, rendered to clients as
// {"errors": {campo: mensaje}} with a 400 status.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return strings.Join(parts, "; ")
}

// UniqueFieldError builds the field error reported when a unique index
// rejects a duplicate value.
func UniqueFieldError(field string) FieldErrors {
	return FieldErrors{field: "Error, esperaba " + field + " único."}
}
