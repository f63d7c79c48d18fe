package services

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/atlasfin/backoffice/internal/dto"
	"github.com/atlasfin/backoffice/internal/helper"
	"github.com/atlasfin/backoffice/internal/helper/utils"
	"github.com/atlasfin/backoffice/internal/interfaces"
	"github.com/atlasfin/backoffice/internal/repository"
	"gorm.io/gorm"
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = 3600 * time.Second
)

// DeliveryOutcome distinguishes a token that was persisted and mailed from
// one that was persisted but never left the building. An undelivered token
// stays valid until it expires or is overwritten, so a later retry of the
// whole flow works without special handling.
type DeliveryOutcome int

const (
	DeliveryNone DeliveryOutcome = iota
	PersistedButUndelivered
	PersistedAndDelivered
)

// CredentialService owns the reset token lifecycle for owner accounts.
// All mutation of reset token and owner credential state goes through
// these two operations.
type CredentialService interface {
	RequestPasswordReset(email string) (DeliveryOutcome, error)
	ResetPassword(input dto.ResetPasswordRequest) error
}

type credentialService struct {
	repo         repository.UserRepository
	notifier     interfaces.Notifier
	auth         helper.Auth
	resetBaseURL string
	now          func() time.Time
}

func NewCredentialService(
	repo repository.UserRepository,
	notifier interfaces.Notifier,
	auth helper.Auth,
	resetBaseURL string,
) CredentialService {
	return &credentialService{
		repo:         repo,
		notifier:     notifier,
		auth:         auth,
		resetBaseURL: resetBaseURL,
		now:          time.Now,
	}
}

// RequestPasswordReset issues a fresh reset token for an owner account and
// mails the reset link. "No such user" and "user is not an owner" are the
// same failure on purpose.
func (s *credentialService) RequestPasswordReset(email string) (DeliveryOutcome, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DeliveryNone, ErrOwnerNotFound
		}
		return DeliveryNone, err
	}
	if !user.IsOwner() {
		return DeliveryNone, ErrOwnerNotFound
	}

	token, err := utils.RandomToken(resetTokenBytes)
	if err != nil {
		return DeliveryNone, errors.New("failed to generate reset token")
	}

	expiresAt := s.now().Add(resetTokenTTL)

	// overwrites any outstanding token; only one is live per user
	if err := s.repo.SetResetToken(user.ID, token, expiresAt); err != nil {
		return DeliveryNone, err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimRight(s.resetBaseURL, "/"),
		url.QueryEscape(token),
	)

	if err := s.notifier.SendPasswordReset(user.Email, user.Name, link); err != nil {
		// token stays persisted; no rollback
		log.Printf("reset delivery failed for user %d: %v", user.ID, err)
		return PersistedButUndelivered, ErrResetDeliveryFailed
	}

	return PersistedAndDelivered, nil
}

// ResetPassword exchanges a valid token for a new owner password. The token
// becomes unusable in the same transaction that writes the hash.
func (s *credentialService) ResetPassword(input dto.ResetPasswordRequest) error {
	input.Token = strings.TrimSpace(input.Token)

	if violations := helper.ValidateStruct(input); len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}

	hash, err := s.auth.HashPassword(input.NewPassword, helper.OwnerHashCost)
	if err != nil {
		return err
	}

	if _, err := s.repo.ConsumeResetToken(input.Token, s.now(), hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// unknown, expired, already consumed and owner-status-lost
			// tokens are indistinguishable to the caller
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	return nil
}
