package services

import (
	"context"
	"errors"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"
	"github.com/cayogarcia/SINC---Video-Tutorial/pkg/utils"

	"gorm.io/gorm"
)

type CreateUserDTO struct {
	Name     string
	Email    string
	Login    string
	Password string // Plaintext, hashed before storage
	Role     models.Role
}

// UserPatch lists the fields an update may touch. Only fields marked Set are written.
type UserPatch struct {
	Name     utils.Optional[string]      `json:"name"`
	Email    utils.Optional[string]      `json:"email"`
	Login    utils.Optional[string]      `json:"login"`
	Password utils.Optional[string]      `json:"password"`
	Role     utils.Optional[models.Role] `json:"role"`
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, wrapStorage("list users", err)
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getBy(ctx, "get user", "id", id)
}

func (s *UserService) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	return s.getBy(ctx, "get user by login", "login", login)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getBy(ctx, "get user by email", "email", email)
}

func (s *UserService) getBy(ctx context.Context, op, column, value string) (*models.User, error) {
	user, err := findUserBy(s.db.WithContext(ctx), column, value)
	if err != nil {
		return nil, wrapStorage(op, err)
	}
	return user, nil
}

// findUserBy loads the user whose column equals value. It runs on whatever
// handle it is given, so callers inside a transaction pass their tx.
func findUserBy(db *gorm.DB, column, value string) (*models.User, error) {
	var user models.User
	if err := db.Where(column+" = ?", value).First(&user).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &user, nil
}

func (s *UserService) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := models.User{
		ID:       utils.NewID(),
		Name:     dto.Name,
		Email:    dto.Email,
		Login:    dto.Login,
		Password: utils.HashPassword(dto.Password),
		Role:     dto.Role,
	}

	err := runInTx(ctx, s.db, "create user", func(tx *gorm.DB) error {
		if err := ensureUnique(tx, "email", user.Email, "", ErrDuplicateEmail); err != nil {
			return err
		}
		if err := ensureUnique(tx, "login", user.Login, "", ErrDuplicateLogin); err != nil {
			return err
		}
		return tx.Omit("Videos").Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the supplied fields of patch. A supplied password is always hashed.
func (s *UserService) Update(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	var user models.User
	err := runInTx(ctx, s.db, "update user", func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return notFoundOr(err)
		}

		changes := map[string]interface{}{}
		if name, ok := patch.Name.Get(); ok {
			changes["name"] = name
		}
		if email, ok := patch.Email.Get(); ok && email != user.Email {
			if err := ensureUnique(tx, "email", email, user.ID, ErrDuplicateEmail); err != nil {
				return err
			}
			changes["email"] = email
		}
		if login, ok := patch.Login.Get(); ok && login != user.Login {
			if err := ensureUnique(tx, "login", login, user.ID, ErrDuplicateLogin); err != nil {
				return err
			}
			changes["login"] = login
		}
		if password, ok := patch.Password.Get(); ok {
			changes["password"] = utils.HashPassword(password)
		}
		if role, ok := patch.Role.Get(); ok {
			changes["role"] = role
		}
		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&user).Updates(changes).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user together with its video access rows.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return runInTx(ctx, s.db, "delete user", func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", id).First(&user).Error; err != nil {
			return notFoundOr(err)
		}
		if err := tx.Model(&user).Association("Videos").Clear(); err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

// ensureUnique fails with dup when another user (not excludeID) holds value in column.
func ensureUnique(tx *gorm.DB, column, value, excludeID string, dup error) error {
	var existing models.User
	q := tx.Where(column+" = ?", value)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.First(&existing).Error
	if err == nil {
		return dup
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
