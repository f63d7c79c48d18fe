package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atlasfin/backoffice/internal/api/rest/middleware"
	"github.com/atlasfin/backoffice/internal/dto"
	"github.com/atlasfin/backoffice/internal/helper"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(svc *fakeUserService, auth helper.Auth) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")
	api.Use(middleware.AuthMiddleware(auth))
	NewUserHandler(svc, auth).SetupRoutes(api)
	return app
}

func TestOnboardingStatus_RequiresAuth(t *testing.T) {
	auth := helper.SetupAuth("test-secret")
	app := newProtectedApp(&fakeUserService{}, auth)

	req := httptest.NewRequest(http.MethodGet, "/api/user/onboarding", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOnboardingStatus_WithToken(t *testing.T) {
	auth := helper.SetupAuth("test-secret")
	svc := &fakeUserService{}
	svc.onboarding = &dto.OnboardingStatusResponse{
		ProfileComplete:  true,
		OwnerProvisioned: true,
	}
	app := newProtectedApp(svc, auth)

	token, err := auth.GenerateToken(7, "owner@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/onboarding", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["profile_complete"])
	assert.Equal(t, true, data["owner_provisioned"])
	assert.Equal(t, false, data["onboarding_completed"])
}
