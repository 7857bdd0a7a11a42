package handler

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mercadito/commerce-api/internal/core/domain"
)

var (
	codePattern    = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
	lettersPattern = regexp.MustCompile(`^\p{L}+(?:\s\p{L}+)*$`)
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Field rules are declared as struct tags on the request schemas; violations
// come back as a domain.FieldErrors map keyed by the JSON field name.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Field names in error maps follow the wire format, not the Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	must(v.RegisterValidation("codigo", func(fl validator.FieldLevel) bool {
		return codePattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("solo_letras", func(fl validator.FieldLevel) bool {
		return lettersPattern.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("password_fuerte", func(fl validator.FieldLevel) bool {
		return domain.StrongPassword(fl.Field().String())
	}))

	return &echoValidator{v: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make(domain.FieldErrors, len(ve))
			for _, fe := range ve {
				fields[fe.Field()] = fieldError(fe)
			}
			return fields
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into the client-facing message.
func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "El campo " + fe.Field() + " es obligatorio"
	case "email":
		return "El email no es válido"
	case "codigo":
		return "El código solo puede contener números, letras y guiones (-)"
	case "solo_letras":
		if fe.Field() == "categoria" {
			return "La categoría solo puede contener letras"
		}
		return "El nombre solo puede contener letras"
	case "password_fuerte":
		return domain.ErrWeakPassword.Error()
	case "oneof":
		return fe.Value().(string) + " no es un rol válido"
	default:
		return "El campo " + fe.Field() + " no es válido"
	}
}
