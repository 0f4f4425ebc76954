package program

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names so messages line up with form fields.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldErrors maps a wire field name to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, fe[f]))
	}
	return "invalid program: " + strings.Join(parts, "; ")
}

// Validate checks p against the form rules. It returns nil or a FieldErrors
// with one message per failing field.
func Validate(p Program) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := FieldErrors{}
	for _, ve := range verrs {
		if _, seen := fe[ve.Field()]; seen {
			continue
		}
		fe[ve.Field()] = message(ve)
	}
	return fe
}

func message(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required", "gt":
		return "This field is required."
	case "min":
		return fmt.Sprintf("This field is required to be at least %s characters.", ve.Param())
	case "max":
		return fmt.Sprintf("This field cannot be longer than %s characters.", ve.Param())
	case "datetime":
		return "This field should be a date (YYYY-MM-DD)."
	default:
		return fmt.Sprintf("This field failed the %q rule.", ve.Tag())
	}
}
