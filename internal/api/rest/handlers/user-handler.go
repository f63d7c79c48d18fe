package handlers

import (
	"strconv"

	"github.com/atlasfin/backoffice/internal/dto"
	"github.com/atlasfin/backoffice/internal/helper"
	"github.com/atlasfin/backoffice/internal/helper/utils"
	"github.com/atlasfin/backoffice/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewUserHandler(svc services.UserService, auth helper.Auth) *UserHandler {
	return &UserHandler{svc: svc, auth: auth}
}

func (h *UserHandler) SetupRoutes(api fiber.Router) {
	user := api.Group("/user")

	user.Get("/me", h.Me)
	user.Get("/onboarding", h.OnboardingStatus)
	user.Post("/onboarding/complete", h.CompleteOnboarding)
	user.Post("/:userID/owner", h.ProvisionOwner)
}

func (h *UserHandler) currentUserID(ctx *fiber.Ctx) (uint, bool) {
	userID, ok := ctx.Locals("userID").(uint)
	return userID, ok && userID != 0
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.svc.GetProfile(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "user not found")
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) OnboardingStatus(ctx *fiber.Ctx) error {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	status, err := h.svc.OnboardingStatus(userID)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, status)
}

func (h *UserHandler) CompleteOnboarding(ctx *fiber.Ctx) error {
	userID, ok := h.currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.svc.CompleteOnboarding(userID); err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Onboarding completed")
}

func (h *UserHandler) ProvisionOwner(ctx *fiber.Ctx) error {
	if _, ok := h.currentUserID(ctx); !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	targetID, err := strconv.ParseUint(ctx.Params("userID"), 10, 64)
	if err != nil || targetID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid user id")
	}

	var requestBody dto.ProvisionOwnerRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid input")
	}

	if err := h.svc.ProvisionOwner(uint(targetID), requestBody); err != nil {
		if verr, ok := services.AsValidationError(err); ok {
			return utils.ResponseValidationError(ctx, "Please provide valid input", verr.Violations)
		}
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Owner credential provisioned")
}
