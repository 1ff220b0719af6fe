package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ron-Caster/POP-Messenger/internal/models"

	"gorm.io/gorm"
)

// Hasher is the pluggable credential hasher.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// Users persists identities and hashed credentials.
type Users struct {
	db     *gorm.DB
	hasher Hasher
}

func NewUsers(db *gorm.DB, hasher Hasher) *Users {
	return &Users{db: db, hasher: hasher}
}

// Register creates a user. Uniqueness is enforced by the unique index on
// username: the insert itself fails for the loser of a concurrent
// registration, so there is no check-then-insert race.
func (s *Users) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is empty")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate verifies a username/password pair.
func (s *Users) Authenticate(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// ListOthers returns every username except self, sorted.
func (s *Users) ListOthers(self string) ([]string, error) {
	var names []string
	err := s.db.Model(&models.User{}).
		Where("username <> ?", self).
		Order("username ASC").
		Pluck("username", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return names, nil
}
