package middleware

import (
	"errors"
	"net/http"

	"github.com/bilgisen/feedharvest/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidatedKey is the Locals key holding the parsed and validated input.
const ValidatedKey = "validated"

var validate = validator.New()

// ValidateBody parses the JSON body into a fresh T, validates it and stores
// the *T under ValidatedKey.
func ValidateBody[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := new(T)
		if err := c.BodyParser(s); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
				"msg":   err.Error(),
			})
		}
		return store(c, s, "Validation failed")
	}
}

// ValidateQuery does the same as ValidateBody for query parameters.
func ValidateQuery[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := new(T)
		if err := c.QueryParser(s); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid query parameters",
				"msg":   err.Error(),
			})
		}
		return store(c, s, "Invalid query parameters")
	}
}

func store(c *fiber.Ctx, s any, message string) error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  message,
			"fields": fields,
		})
	}

	c.Locals(ValidatedKey, s)
	return c.Next()
}

// ErrorHandler is a middleware that handles errors in a consistent way
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	logger.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
