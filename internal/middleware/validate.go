package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/bilgisen/mrzgang/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	// QueryKey is the fiber.Locals key holding bound query parameters
	QueryKey = "queryParams"
	// BodyKey is the fiber.Locals key holding a bound request body
	BodyKey = "validated"
)

// Validator is a struct that holds the validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their query or json name
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &Validator{validate: v}
}

// Validate validates a struct against its validate tags
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

var defaultValidator = NewValidator()

// FieldErrors maps invalid field names to the failed rule
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}

// describe turns field errors into a single readable sentence
func describe(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		switch tag := fields[name]; tag {
		case "required":
			parts = append(parts, fmt.Sprintf("missing %s", name))
		case "datetime":
			parts = append(parts, fmt.Sprintf("%s must be formatted YYYY-MM-DD", name))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", name, tag))
		}
	}
	return strings.Join(parts, "; ")
}

// BindQuery parses query parameters into a fresh T per request and validates
// it. Failures answer 400 with {"error": ...}. The bound value is stored under
// QueryKey.
func BindQuery[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := new(T)
		if err := c.QueryParser(params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid query parameters: " + err.Error(),
			})
		}

		if err := defaultValidator.Validate(params); err != nil {
			fields := FieldErrors(err)
			if fields == nil {
				return err
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid query parameters: " + describe(fields),
			})
		}

		c.Locals(QueryKey, params)
		return c.Next()
	}
}

// BindBody parses the request body into a fresh T per request and validates
// it. Unparseable bodies answer 400, failed validation 422 with the offending
// fields. The bound value is stored under BodyKey.
func BindBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := new(T)
		if err := c.BodyParser(body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
				"msg":   err.Error(),
			})
		}

		if err := defaultValidator.Validate(body); err != nil {
			fields := FieldErrors(err)
			if fields == nil {
				return err
			}
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": fields,
			})
		}

		c.Locals(BodyKey, body)
		return c.Next()
	}
}

// ErrorHandler is a middleware that handles errors in a consistent way
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
