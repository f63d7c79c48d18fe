package services

import (
	"errors"
	"strings"
	"time"

	"github.com/atlasfin/backoffice/internal/domain"
	"github.com/atlasfin/backoffice/internal/dto"
	"github.com/atlasfin/backoffice/internal/helper"
	"github.com/atlasfin/backoffice/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	Register(input dto.RegisterRequest) error
	Login(input dto.UserLogin) (*domain.User, error)

	GetProfile(userID uint) (*domain.User, error)
	OnboardingStatus(userID uint) (*dto.OnboardingStatusResponse, error)
	CompleteOnboarding(userID uint) error

	ProvisionOwner(userID uint, input dto.ProvisionOwnerRequest) error
}

type userService struct {
	repo repository.UserRepository
	auth helper.Auth
}

func NewUserService(repo repository.UserRepository, auth helper.Auth) UserService {
	return &userService{
		repo: repo,
		auth: auth,
	}
}

func (u *userService) Register(input dto.RegisterRequest) error {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if violations := helper.ValidateStruct(input); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	newUser := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		Phone:        input.Phone,
		Status:       "active",
	}

	if _, err := u.repo.CreateUser(newUser); err != nil {
		if helper.IsDuplicateKey(err) {
			return ErrEmailTaken
		}
		return err
	}

	return nil
}

func (u *userService) Login(input dto.UserLogin) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != "" && user.Status != "active" {
		return nil, errors.New("account is not active")
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, errors.New("invalid user id")
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (u *userService) OnboardingStatus(userID uint) (*dto.OnboardingStatusResponse, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	return &dto.OnboardingStatusResponse{
		ProfileComplete:     user.Name != "" && user.Phone != nil && *user.Phone != "",
		OwnerProvisioned:    user.IsOwner(),
		OnboardingCompleted: user.OnboardingCompletedAt != nil,
	}, nil
}

func (u *userService) CompleteOnboarding(userID uint) error {
	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return err
	}

	if user.OnboardingCompletedAt != nil {
		return nil
	}

	now := time.Now()
	user.OnboardingCompletedAt = &now
	return u.repo.SaveUser(user)
}

// ProvisionOwner creates (or rewrites) the owner credential record for a
// user, making the account eligible for the privileged reset flow.
func (u *userService) ProvisionOwner(userID uint, input dto.ProvisionOwnerRequest) error {
	if userID == 0 {
		return errors.New("invalid user id")
	}

	if violations := helper.ValidateStruct(input); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	if _, err := u.repo.FindUserById(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("user not found")
		}
		return err
	}

	hash, err := u.auth.HashPassword(input.Password, helper.OwnerHashCost)
	if err != nil {
		return err
	}

	return u.repo.ProvisionOwner(userID, hash)
}
