package utils

import "github.com/gofiber/fiber/v2"

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// ResponseValidationError reports every violated field, not just the first.
func ResponseValidationError(ctx *fiber.Ctx, msg string, violations []string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": msg,
		"errors":  violations,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}
