package services

import (
	"context"
	"time"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/metrics"
	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"
	"github.com/cayogarcia/SINC---Video-Tutorial/pkg/utils"

	"gorm.io/gorm"
)

// VideoInput carries the writable fields of a video. AllowedUserIDs distinguishes
// an omitted list (leave access untouched) from an empty one (revoke everyone).
type VideoInput struct {
	Title          string
	Link           string
	CategoryID     *string
	AllowedUserIDs utils.Optional[[]string]
}

// VideoFilter narrows List. Empty fields do not filter.
type VideoFilter struct {
	CategoryID string
	UserID     string
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VideoDetail is the response shape of a video.
type VideoDetail struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Link         string       `json:"link"`
	CategoryID   *string      `json:"category_id"`
	Category     *CategoryRef `json:"category"`
	AllowedUsers []string     `json:"allowed_users"`
	UsersCount   int          `json:"users_count"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewVideoDetail projects a video loaded with its Category and AllowedUsers.
// category_id follows the joined category, so a dangling reference reads as null.
func NewVideoDetail(v models.Video) VideoDetail {
	detail := VideoDetail{
		ID:           v.ID,
		Title:        v.Title,
		Link:         v.Link,
		AllowedUsers: make([]string, 0, len(v.AllowedUsers)),
		UsersCount:   len(v.AllowedUsers),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	if v.Category != nil {
		id := v.Category.ID
		detail.CategoryID = &id
		detail.Category = &CategoryRef{ID: v.Category.ID, Name: v.Category.Name}
	}
	for _, u := range v.AllowedUsers {
		detail.AllowedUsers = append(detail.AllowedUsers, u.ID)
	}
	return detail
}

type VideoService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewVideoService(db *gorm.DB) *VideoService {
	return &VideoService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// withRelations scopes a query to active videos and preloads what NewVideoDetail needs.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Category").Preload("AllowedUsers").Where("videos.deleted = ?", false)
}

func (s *VideoService) List(ctx context.Context, filter VideoFilter) ([]models.Video, error) {
	db := s.db.WithContext(ctx)
	q := withRelations(db)
	if filter.CategoryID != "" {
		q = q.Where("videos.category_id = ?", filter.CategoryID)
	}
	if filter.UserID != "" {
		q = q.Where("videos.id IN (?)",
			db.Table("video_user_association").Select("video_id").Where("user_id = ?", filter.UserID))
	}

	var videos []models.Video
	if err := q.Order("videos.created_at").Find(&videos).Error; err != nil {
		return nil, wrapStorage("list videos", err)
	}
	return videos, nil
}

func (s *VideoService) DetailedList(ctx context.Context, filter VideoFilter) ([]VideoDetail, error) {
	videos, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	details := make([]VideoDetail, 0, len(videos))
	for _, v := range videos {
		details = append(details, NewVideoDetail(v))
	}
	return details, nil
}

func (s *VideoService) Get(ctx context.Context, id string) (*models.Video, error) {
	video, err := loadVideo(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, wrapStorage("get video", err)
	}
	return video, nil
}

func (s *VideoService) Create(ctx context.Context, in VideoInput) (*models.Video, error) {
	var video *models.Video
	err := runInTx(ctx, s.db, "create video", func(tx *gorm.DB) error {
		users, err := resolveUsers(tx, in.AllowedUserIDs.Value)
		if err != nil {
			return err
		}

		now := s.now()
		created := models.Video{
			ID:           utils.NewID(),
			Title:        in.Title,
			Link:         in.Link,
			CategoryID:   normalizeCategoryID(in.CategoryID),
			CreatedAt:    now,
			UpdatedAt:    now,
			AllowedUsers: users,
		}
		// Users already exist; only the join rows are written.
		if err := tx.Omit("Category", "AllowedUsers.*").Create(&created).Error; err != nil {
			return err
		}

		video, err = loadVideo(tx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// Update overwrites title, link and category of an active video and refreshes updated_at.
// The access list is replaced only when in.AllowedUserIDs is Set.
func (s *VideoService) Update(ctx context.Context, id string, in VideoInput) (*models.Video, error) {
	var video *models.Video
	err := runInTx(ctx, s.db, "update video", func(tx *gorm.DB) error {
		var current models.Video
		if err := tx.Where("id = ? AND deleted = ?", id, false).First(&current).Error; err != nil {
			return notFoundOr(err)
		}

		// Replacing the association saves the parent with gorm's clock, so it
		// runs before the columns below write updated_at from s.now.
		if ids, ok := in.AllowedUserIDs.Get(); ok {
			if err := replaceAllowedUsers(tx, &current, ids); err != nil {
				return err
			}
		}

		var categoryID interface{}
		if c := normalizeCategoryID(in.CategoryID); c != nil {
			categoryID = *c
		}
		if err := tx.Model(&models.Video{}).Where("id = ?", id).UpdateColumns(map[string]interface{}{
			"title":       in.Title,
			"link":        in.Link,
			"category_id": categoryID,
			"updated_at":  s.now(),
		}).Error; err != nil {
			return err
		}

		var err error
		video, err = loadVideo(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// Delete marks an active video as deleted. The row and its access list stay in
// storage. Deleting an already deleted video returns ErrNotFound.
func (s *VideoService) Delete(ctx context.Context, id string) error {
	err := runInTx(ctx, s.db, "delete video", func(tx *gorm.DB) error {
		result := tx.Model(&models.Video{}).
			Where("id = ? AND deleted = ?", id, false).
			UpdateColumns(map[string]interface{}{"deleted": true, "updated_at": s.now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	metrics.RecordVideoSoftDeleted()
	return nil
}

func loadVideo(db *gorm.DB, id string) (*models.Video, error) {
	var video models.Video
	if err := withRelations(db).Where("videos.id = ?", id).First(&video).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &video, nil
}

// resolveUsers returns the users among ids that exist. Unknown ids are dropped.
func resolveUsers(tx *gorm.DB, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := tx.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func replaceAllowedUsers(tx *gorm.DB, video *models.Video, ids []string) error {
	users, err := resolveUsers(tx, ids)
	if err != nil {
		return err
	}
	association := tx.Model(video).Omit("AllowedUsers.*").Association("AllowedUsers")
	if len(users) == 0 {
		return association.Clear()
	}
	return association.Replace(users)
}

func normalizeCategoryID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	c := *id
	return &c
}
