package repository

import (
	"errors"
	"log"
	"time"

	"github.com/atlasfin/backoffice/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository is the only surface through which reset token and owner
// credential state is touched. ConsumeResetToken is deliberately a single
// operation so callers cannot reproduce the racy find-then-clear pattern.
type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserById(userID uint) (*domain.User, error)
	SaveUser(user *domain.User) error

	SetResetToken(userID uint, token string, expiresAt time.Time) error
	ConsumeResetToken(token string, now time.Time, newPasswordHash string) (*domain.User, error)

	ProvisionOwner(userID uint, passwordHash string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}

	if err := r.db.Create(user).Error; err != nil {
		log.Printf("create user error: %v", err)
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.Preload("OwnerCredential").First(user, "email = ?", email).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("find user by email error: %v", err)
		}
		return nil, err
	}

	return user, nil
}

func (r *userRepository) FindUserById(userID uint) (*domain.User, error) {
	user := &domain.User{}

	if err := r.db.Preload("OwnerCredential").First(user, userID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("find user by id error: %v", err)
		}
		return nil, err
	}

	return user, nil
}

func (r *userRepository) SaveUser(user *domain.User) error {
	if user == nil {
		return errors.New("nil user")
	}

	if err := r.db.Save(user).Error; err != nil {
		log.Printf("save user error: %v", err)
		return err
	}
	return nil
}

// SetResetToken overwrites any outstanding token for the user. The old
// value is gone afterwards, which is what invalidates it.
func (r *userRepository) SetResetToken(userID uint, token string, expiresAt time.Time) error {
	res := r.db.Model(&domain.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":            token,
			"reset_token_expires_at": expiresAt,
		})
	if res.Error != nil {
		log.Printf("set reset token error: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ConsumeResetToken exchanges a valid, unexpired token for a password
// change in one transaction. The matching row is locked, the owner
// credential hash is overwritten, and the token pair is cleared with an
// update conditioned on the token still matching, so the same token can
// never be consumed twice.
func (r *userRepository) ConsumeResetToken(token string, now time.Time, newPasswordHash string) (*domain.User, error) {
	user := &domain.User{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reset_token = ? AND reset_token_expires_at >= ?", token, now).
			First(user).Error; err != nil {
			return err
		}

		// a token whose holder lost owner status is invalid
		cred := &domain.OwnerCredential{}
		if err := tx.Where("user_id = ?", user.ID).First(cred).Error; err != nil {
			return err
		}

		if err := tx.Model(cred).Update("password_hash", newPasswordHash).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.User{}).
			Where("id = ? AND reset_token = ?", user.ID, token).
			Updates(map[string]interface{}{
				"reset_token":            nil,
				"reset_token_expires_at": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		user.ResetToken = nil
		user.ResetTokenExpiresAt = nil
		cred.PasswordHash = newPasswordHash
		user.OwnerCredential = cred
		return nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("consume reset token error: %v", err)
		}
		return nil, err
	}

	return user, nil
}

func (r *userRepository) ProvisionOwner(userID uint, passwordHash string) error {
	cred := &domain.OwnerCredential{
		UserID:       userID,
		PasswordHash: passwordHash,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash"}),
	}).Create(cred).Error
	if err != nil {
		log.Printf("provision owner error: %v", err)
		return err
	}
	return nil
}
