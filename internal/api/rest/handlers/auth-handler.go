package handlers

import (
	"errors"

	"github.com/atlasfin/backoffice/internal/dto"
	"github.com/atlasfin/backoffice/internal/helper"
	"github.com/atlasfin/backoffice/internal/helper/utils"
	"github.com/atlasfin/backoffice/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	userSvc services.UserService
	credSvc services.CredentialService
	auth    helper.Auth
}

func NewAuthHandler(userSvc services.UserService, credSvc services.CredentialService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{
		userSvc: userSvc,
		credSvc: credSvc,
		auth:    auth,
	}
}

func (h *AuthHandler) SetupRoutes(api fiber.Router) {
	auth := api.Group("/auth")

	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.userSvc.Register(requestBody); err != nil {
		if verr, ok := services.AsValidationError(err); ok {
			return utils.ResponseValidationError(ctx, "Please provide valid inputs", verr.Violations)
		}
		if errors.Is(err, services.ErrEmailTaken) {
			return utils.ResponseError(ctx, fiber.StatusConflict, "Email already exists")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Failed to register user")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "User registered successfully")
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.UserLogin

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.userSvc.Login(requestBody)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.auth.GenerateToken(int(user.ID), user.Email)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"token": token,
	})
}

// ForgotPassword issues a reset token for an owner account. A 404 here is
// intentionally distinguishable from the generic 400 on the consume side;
// unifying the two is a pending product decision.
func (h *AuthHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ForgotPasswordRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	if _, err := h.credSvc.RequestPasswordReset(requestBody.Email); err != nil {
		if errors.Is(err, services.ErrOwnerNotFound) {
			return utils.ResponseError(ctx, fiber.StatusNotFound, "Owner account not found")
		}
		if errors.Is(err, services.ErrResetDeliveryFailed) {
			return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Failed to send reset email")
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Failed to request password reset")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password reset link sent")
}

func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ResetPasswordRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid input")
	}

	if err := h.credSvc.ResetPassword(requestBody); err != nil {
		if verr, ok := services.AsValidationError(err); ok {
			return utils.ResponseValidationError(ctx, "Please provide valid input", verr.Violations)
		}
		if errors.Is(err, services.ErrInvalidOrExpiredToken) {
			return utils.ResponseError(ctx, fiber.StatusBadRequest, "Invalid or expired token")
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to reset password",
			"error":   err.Error(),
		})
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password reset successfully")
}
