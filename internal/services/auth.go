package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/metrics"
	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"
	"github.com/cayogarcia/SINC---Video-Tutorial/pkg/utils"

	"gorm.io/gorm"
)

// PlaceholderToken is handed out on every successful login. Nothing validates it.
const PlaceholderToken = "fake-token"

type PublicUser struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Login string      `json:"login"`
	Role  models.Role `json:"role"`
}

func NewPublicUser(u models.User) PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Login: u.Login,
		Role:  u.Role,
	}
}

type Session struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        PublicUser `json:"user"`

	// Migrated is true when this login rewrote a plaintext password as a digest.
	Migrated bool `json:"-"`
}

type AuthService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewAuthService(db *gorm.DB, logger *slog.Logger) *AuthService {
	return &AuthService{db: db, logger: logger}
}

// Login checks password against the stored digest. Accounts still holding a
// plaintext password are accepted once and upgraded to the digest in the same
// transaction. Unknown logins and wrong passwords fail with the same error.
func (s *AuthService) Login(ctx context.Context, login, password string) (*Session, error) {
	var session *Session
	err := runInTx(ctx, s.db, "login", func(tx *gorm.DB) error {
		user, err := findUserBy(tx, "login", login)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}

		migrated := false
		switch {
		case utils.CheckPasswordHash(password, user.Password):
		case isLegacyPlaintext(user.Password, password):
			if err := tx.Model(user).UpdateColumn("password", utils.HashPassword(password)).Error; err != nil {
				return err
			}
			migrated = true
		default:
			return ErrInvalidCredentials
		}

		session = &Session{
			AccessToken: PlaceholderToken,
			TokenType:   "bearer",
			User:        NewPublicUser(*user),
			Migrated:    migrated,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			metrics.RecordLogin(metrics.LoginFailed)
		}
		return nil, err
	}

	metrics.RecordLogin(metrics.LoginSucceeded)
	if session.Migrated {
		metrics.RecordPasswordMigration()
		s.logger.Info("Migrated plaintext password to digest", "user_id", session.User.ID)
	}
	return session, nil
}

// isLegacyPlaintext reports whether stored is the supplied password kept in clear.
// Stored values that are empty or shaped like a digest (64 hex characters) never
// qualify, so knowing a digest is not enough to sign in. A legacy plaintext
// password that happens to be 64 hex characters is therefore rejected and the
// account needs its password reset through UpdateUser.
func isLegacyPlaintext(stored, password string) bool {
	if stored == "" || utils.IsPasswordHash(stored) {
		return false
	}
	return utils.SecureCompare(stored, password)
}
