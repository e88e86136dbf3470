package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-desk/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDuplicateLogin     = errors.New("login already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
)

// Session binds a request to the technician who authenticated.
type Session struct {
	TechnicianID uint
}

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

func normalizeLogin(login string) string {
	return strings.ToLower(login)
}

// Register creates a technician and returns a session for it.
func (s *Service) Register(ctx context.Context, name, login, password string) (Session, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return Session{}, err
	}

	tech := models.Technician{
		Name:         name,
		Login:        normalizeLogin(login),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&tech).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return Session{}, ErrDuplicateLogin
		}
		return Session{}, fmt.Errorf("failed to create technician: %w", err)
	}

	return Session{TechnicianID: tech.ID}, nil
}

// Login checks the credentials. Unknown logins and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, login, password string) (Session, error) {
	var tech models.Technician
	err := s.db.WithContext(ctx).
		Where("usuario = ?", normalizeLogin(login)).
		First(&tech).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up technician: %w", err)
	}

	ok, err := VerifyPassword(tech.PasswordHash, password)
	if err != nil || !ok {
		return Session{}, ErrInvalidCredentials
	}

	return Session{TechnicianID: tech.ID}, nil
}
