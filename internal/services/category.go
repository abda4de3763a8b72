package services

import (
	"context"
	"errors"
	"strings"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"
	"github.com/cayogarcia/SINC---Video-Tutorial/pkg/utils"

	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, wrapStorage("list categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, wrapStorage("get category", notFoundOr(err))
	}
	return &category, nil
}

// GetByName matches name exactly, without trimming.
func (s *CategoryService) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, wrapStorage("get category by name", notFoundOr(err))
	}
	return &category, nil
}

// Create stores a category under the trimmed name. "Math" and "Math " collide.
func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{
		ID:   utils.NewID(),
		Name: strings.TrimSpace(name),
	}

	err := runInTx(ctx, s.db, "create category", func(tx *gorm.DB) error {
		var existing models.Category
		err := tx.Where("name = ?", category.Name).First(&existing).Error
		if err == nil {
			return ErrDuplicateName
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Update renames a category. Uniqueness against other rows is left to the
// database constraint, so a clash surfaces as a StorageError wrapping
// gorm.ErrDuplicatedKey rather than ErrDuplicateName.
func (s *CategoryService) Update(ctx context.Context, id, name string) (*models.Category, error) {
	var category models.Category
	err := runInTx(ctx, s.db, "update category", func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return notFoundOr(err)
		}
		category.Name = strings.TrimSpace(name)
		return tx.Model(&category).Update("name", category.Name).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete removes the category. Videos that referenced it keep existing with no category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return runInTx(ctx, s.db, "delete category", func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.Where("id = ?", id).First(&category).Error; err != nil {
			return notFoundOr(err)
		}
		if err := tx.Model(&models.Video{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}
