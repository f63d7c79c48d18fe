package services

import (
	"testing"

	"github.com/atlasfin/backoffice/internal/dto"
	"github.com/atlasfin/backoffice/internal/helper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(repo *fakeUserRepo) UserService {
	return NewUserService(repo, helper.SetupAuth("test-secret"))
}

func TestRegister_ValidationViolations(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	err := svc.Register(dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
		Name:     "",
	})

	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Len(t, verr.Violations, 3)
	assert.Empty(t, repo.users)
}

func TestRegister_NormalizesEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	err := svc.Register(dto.RegisterRequest{
		Email:    "  Agent@Example.COM ",
		Password: "password123",
		Name:     "Agent",
	})
	require.NoError(t, err)

	user, err := repo.FindUserByEmail("agent@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Agent", user.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	require.NoError(t, svc.Register(dto.RegisterRequest{
		Email:    "agent@example.com",
		Password: "password123",
		Name:     "Agent",
	}))

	_, err := svc.Login(dto.UserLogin{Email: "agent@example.com", Password: "wrongpass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(dto.UserLogin{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	require.NoError(t, svc.Register(dto.RegisterRequest{
		Email:    "agent@example.com",
		Password: "password123",
		Name:     "Agent",
	}))

	user, err := svc.Login(dto.UserLogin{Email: "agent@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", user.Email)
}

func TestProvisionOwner_MakesUserEligibleForReset(t *testing.T) {
	repo := newFakeUserRepo()
	user := repo.addUser(1, "owner@example.com", "Owner", false)
	svc := newTestUserService(repo)

	err := svc.ProvisionOwner(user.ID, dto.ProvisionOwnerRequest{Password: "ownerpass1"})
	require.NoError(t, err)
	require.True(t, user.IsOwner())

	cost, err := bcrypt.Cost([]byte(user.OwnerCredential.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, helper.OwnerHashCost, cost)
}

func TestProvisionOwner_ShortPassword(t *testing.T) {
	repo := newFakeUserRepo()
	user := repo.addUser(1, "owner@example.com", "Owner", false)
	svc := newTestUserService(repo)

	err := svc.ProvisionOwner(user.ID, dto.ProvisionOwnerRequest{Password: "short"})

	_, ok := AsValidationError(err)
	assert.True(t, ok)
	assert.False(t, user.IsOwner())
}

func TestOnboardingStatus(t *testing.T) {
	repo := newFakeUserRepo()
	phone := "+66811111111"
	user := repo.addUser(1, "owner@example.com", "Owner", true)
	user.Phone = &phone
	svc := newTestUserService(repo)

	status, err := svc.OnboardingStatus(user.ID)
	require.NoError(t, err)
	assert.True(t, status.ProfileComplete)
	assert.True(t, status.OwnerProvisioned)
	assert.False(t, status.OnboardingCompleted)

	require.NoError(t, svc.CompleteOnboarding(user.ID))

	status, err = svc.OnboardingStatus(user.ID)
	require.NoError(t, err)
	assert.True(t, status.OnboardingCompleted)

	// idempotent
	require.NoError(t, svc.CompleteOnboarding(user.ID))
}
