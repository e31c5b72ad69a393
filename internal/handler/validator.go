package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// Validator checks request bodies against their validate tags
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// Field messages keyed by validator tag
var tagMessages = map[string]string{
	"required":   "This field is required",
	"uuid":       "Must be a valid UUID",
	"dropsource": "Unknown source",
}

// InitValidator builds the shared validator. Field errors are reported under
// the request's JSON names.
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("dropsource", validateDropSource)
		validate = &Validator{validate: v}
	})
}

// GetValidator returns the shared validator, building it on first use
func GetValidator() *Validator {
	InitValidator()
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError maps each failing field to a user-facing message
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "Invalid request format"}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errs[e.Field()] = fieldMessage(e)
	}
	return errs
}

func fieldMessage(e validator.FieldError) string {
	if msg, ok := tagMessages[e.Tag()]; ok {
		return msg
	}
	switch e.Tag() {
	case "gt":
		return fmt.Sprintf("Must be greater than %s", e.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", e.Param())
	}
	return "Invalid value"
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name)
	}
	return name
}

// validateDropSource accepts the sources a caller may issue a case from.
// Empty is allowed; the service records it as "other".
func validateDropSource(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	src := domain.ParseDropSource(raw)
	return src != domain.SourceOther && src != domain.SourceCaseOpening
}
