// Package handlers registers the REST surface. Every handler resolves the
// acting partner through the auth middleware, calls into services, and
// shapes JSON. Validation failures come back as 400 with field errors;
// anything unexpected is logged server-side and returned as a bare 500.
package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// validationErrors runs struct validation and shapes the failures for the
// client, nil when the payload is fine.
func validationErrors(v any) []fiber.Map {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []fiber.Map{{"error": err.Error()}}
	}

	out := make([]fiber.Map, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fiber.Map{"field": fe.Field(), "rule": fe.Tag()})
	}
	return out
}

func badRequest(c *fiber.Ctx, message string, errs []fiber.Map) error {
	body := fiber.Map{"message": message}
	if len(errs) > 0 {
		body["errors"] = errs
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found"})
}

// internalError logs the cause and returns a generic 500; no detail leaks
// to the client.
func internalError(c *fiber.Ctx, scope string, err error) error {
	log.Printf("[%s] %s %s: %v", scope, c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
