package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationErrors maps a field path such as "genres.1" to its messages.
type ValidationErrors map[string][]string

func (v ValidationErrors) Error() string {
	return "The given data was invalid."
}

func (v ValidationErrors) add(field, message string) {
	v[field] = append(v[field], message)
}

// Validator runs struct tag validation and reports failures by JSON field name.
type Validator struct {
	validate *validator.Validate
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// Struct validates s and returns nil or a ValidationErrors.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := ValidationErrors{}
	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		out.add(field, message(field, fe))
	}
	return out
}

// fieldPath turns "CreateMovieRequest.genres[1]" into "genres.1".
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx != -1 {
		namespace = namespace[idx+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func message(field string, fe validator.FieldError) string {
	label := "The " + strings.ReplaceAll(field, "_", " ") + " field"
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not be greater than %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must not be greater than %s.", label, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "datetime":
		return label + " must match the format Y-m-d."
	case "url":
		return label + " must be a valid URL."
	case "email":
		return label + " must be a valid email address."
	}
	return label + " is invalid."
}

// decodeErrors describes a request body or query that could not be decoded
// into the request type at all.
func decodeErrors(err error) ValidationErrors {
	out := ValidationErrors{}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		kind := typeErr.Type.Kind()
		switch {
		case kind == reflect.Slice:
			out.add(field, fmt.Sprintf("The %s field must be an array.", field))
		case kind == reflect.String || (kind == reflect.Ptr && typeErr.Type.Elem().Kind() == reflect.String):
			out.add(field, fmt.Sprintf("The %s field must be a string.", strings.ReplaceAll(field, "_", " ")))
		default:
			out.add(field, fmt.Sprintf("The %s field is invalid.", strings.ReplaceAll(field, "_", " ")))
		}
		return out
	}

	var multi fiber.MultiError
	if errors.As(err, &multi) {
		for field := range multi {
			out.add(field, fmt.Sprintf("The %s field is invalid.", strings.ReplaceAll(field, "_", " ")))
		}
		return out
	}

	out.add("body", "The request body is malformed.")
	return out
}

// bind parses the body (JSON or form) into req and validates it.
func (v *Validator) bind(c *fiber.Ctx, req interface{}) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			if errors.Is(err, fiber.ErrUnprocessableEntity) {
				return ValidationErrors{"body": {"The request content type is not supported."}}
			}
			return decodeErrors(err)
		}
	}
	return v.Struct(req)
}

// bindQuery parses the query string into req and validates it.
func (v *Validator) bindQuery(c *fiber.Ctx, req interface{}) error {
	if err := c.QueryParser(req); err != nil {
		return decodeErrors(err)
	}
	return v.Struct(req)
}
