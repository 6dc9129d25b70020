package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode"
	"unicode/utf8"

	"pdf-voice/backend/common"
	"pdf-voice/backend/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// CredentialStore owns user accounts and password hashes.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// ValidatePassword accepts passwords of at least 8 characters holding at
// least one digit and one letter.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	var hasDigit, hasLetter bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		}
	}
	if !hasDigit || !hasLetter {
		return ErrPasswordComposition
	}
	return nil
}

func (s *CredentialStore) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" {
		return 0, ErrEmptyUsername
	}
	if password == "" {
		return 0, ErrEmptyPassword
	}
	if err := ValidatePassword(password); err != nil {
		return 0, err
	}

	hash, err := common.Password2Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Username: username, Hash: hash}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := model.IsUsernameAlreadyTaken(tx, username)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateUsername
		}
		return model.CreateUser(tx, user)
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent signup for the same name
		return 0, ErrDuplicateUsername
	}
	if err != nil {
		return 0, err
	}
	return user.Id, nil
}

// Authenticate fails with ErrInvalidCredentials whether the user is unknown
// or the password is wrong.
func (s *CredentialStore) Authenticate(ctx context.Context, username, password string) (int64, error) {
	user, err := model.GetUserByUsername(s.db.WithContext(ctx), username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// keep the response time of unknown users close to wrong passwords
		common.ValidatePasswordAndHash(password, dummyHash())
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, err
	}
	if !common.ValidatePasswordAndHash(password, user.Hash) {
		return 0, ErrInvalidCredentials
	}
	return user.Id, nil
}

// ChangePassword checks the old password first, then the new one and its
// confirmation, and stores the new hash only when all checks pass.
func (s *CredentialStore) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword, confirmation string) error {
	if oldPassword == "" {
		return ErrOldPasswordMissing
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := model.GetUserById(tx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if !common.ValidatePasswordAndHash(oldPassword, user.Hash) {
			return ErrIncorrectOldPassword
		}
		if newPassword == "" {
			return ErrNewPasswordMissing
		}
		if confirmation == "" {
			return ErrConfirmationMissing
		}
		if newPassword != confirmation {
			return ErrPasswordMismatch
		}
		if err := ValidatePassword(newPassword); err != nil {
			return err
		}

		hash, err := common.Password2Hash(newPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		n, err := model.UpdateUserHash(tx, userID, hash)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *CredentialStore) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := model.GetUserById(s.db.WithContext(ctx), userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

var (
	dummyHashOnce  sync.Once
	dummyHashValue string
)

func dummyHash() string {
	dummyHashOnce.Do(func() {
		dummyHashValue, _ = common.Password2Hash(uuid.NewString())
	})
	return dummyHashValue
}
