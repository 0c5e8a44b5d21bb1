package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskhive/taskhive-server/internal/model"
)

// Validator checks struct field constraints before persistence.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator with the nopassword rule registered. The rule
// rejects any value containing the literal substring "password",
// case-insensitive, and is checked before the value is ever hashed.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration cannot fail for a plain func with a valid tag name.
	_ = v.RegisterValidation("nopassword", func(fl validator.FieldLevel) bool {
		return !strings.Contains(strings.ToLower(fl.Field().String()), "password")
	})

	return &Validator{v: v}
}

// Struct validates s and returns a model.ValidationError listing the
// offending fields, or nil when every constraint holds.
func (va *Validator) Struct(s any) error {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		if !seen[name] {
			seen[name] = true
			fields = append(fields, name)
		}
	}

	return &model.ValidationError{Fields: fields}
}

// Var validates a single value against a tag expression.
func (va *Validator) Var(field string, value any, tag string) error {
	if err := va.v.Var(value, tag); err != nil {
		return &model.ValidationError{Fields: []string{field}}
	}
	return nil
}
