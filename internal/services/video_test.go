package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cayogarcia/SINC---Video-Tutorial/internal/models"
	"github.com/cayogarcia/SINC---Video-Tutorial/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoService(t *testing.T) {
	db := setupTestDB()
	service := NewVideoService(db)
	users := NewUserService(db)
	categories := NewCategoryService(db)
	ctx := context.Background()

	u1, err := users.Create(ctx, newUserDTO("u1"))
	require.NoError(t, err)
	u2, err := users.Create(ctx, newUserDTO("u2"))
	require.NoError(t, err)
	category, err := categories.Create(ctx, "Onboarding")
	require.NoError(t, err)

	t.Run("Create and Get", func(t *testing.T) {
		before := time.Now().Add(-time.Second)
		video, err := service.Create(ctx, VideoInput{
			Title:          "Welcome",
			Link:           "https://v/welcome",
			CategoryID:     &category.ID,
			AllowedUserIDs: utils.Some([]string{u1.ID}),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, video.ID)
		assert.False(t, video.Deleted)
		assert.True(t, video.CreatedAt.After(before))
		assert.True(t, video.CreatedAt.Equal(video.UpdatedAt))

		got, err := service.Get(ctx, video.ID)
		require.NoError(t, err)
		assert.Equal(t, "Welcome", got.Title)
		assert.Equal(t, "https://v/welcome", got.Link)
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, category.ID, *got.CategoryID)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Onboarding", got.Category.Name)
		require.Len(t, got.AllowedUsers, 1)
		assert.Equal(t, u1.ID, got.AllowedUsers[0].ID)
	})

	t.Run("Create drops unknown users", func(t *testing.T) {
		video, err := service.Create(ctx, VideoInput{
			Title:          "Partial",
			Link:           "https://v/partial",
			AllowedUserIDs: utils.Some([]string{u1.ID, "ghost"}),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{u1.ID}, NewVideoDetail(*video).AllowedUsers)
		assert.Nil(t, video.CategoryID)
	})

	t.Run("Create with empty category id", func(t *testing.T) {
		video, err := service.Create(ctx, VideoInput{Title: "NoCat", Link: "https://v/nocat", CategoryID: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, video.CategoryID)
		assert.Empty(t, video.AllowedUsers)
	})

	t.Run("Get missing", func(t *testing.T) {
		_, err := service.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update access list", func(t *testing.T) {
		video, err := service.Create(ctx, VideoInput{
			Title:          "Access",
			Link:           "https://v/access",
			AllowedUserIDs: utils.Some([]string{u1.ID, u2.ID}),
		})
		require.NoError(t, err)

		// Omitted list leaves access untouched
		updated, err := service.Update(ctx, video.ID, VideoInput{Title: "Access v2", Link: "https://v/access2"})
		require.NoError(t, err)
		assert.Equal(t, "Access v2", updated.Title)
		assert.Len(t, updated.AllowedUsers, 2)

		// Unknown ids are dropped from a replacement
		updated, err = service.Update(ctx, video.ID, VideoInput{
			Title:          "Access v3",
			Link:           "https://v/access3",
			AllowedUserIDs: utils.Some([]string{u1.ID, "ghost"}),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{u1.ID}, NewVideoDetail(*updated).AllowedUsers)

		// Empty list clears
		updated, err = service.Update(ctx, video.ID, VideoInput{
			Title:          "Access v4",
			Link:           "https://v/access4",
			AllowedUserIDs: utils.Some([]string{}),
		})
		require.NoError(t, err)
		assert.Empty(t, updated.AllowedUsers)

		var rows int64
		db.Table("video_user_association").Where("video_id = ?", video.ID).Count(&rows)
		assert.Equal(t, int64(0), rows)
	})

	t.Run("Update overwrites category and refreshes updated_at", func(t *testing.T) {
		video, err := service.Create(ctx, VideoInput{Title: "Cat", Link: "https://v/cat", CategoryID: &category.ID})
		require.NoError(t, err)

		later := video.UpdatedAt.Add(time.Minute)
		service.now = func() time.Time { return later }
		defer func() { service.now = func() time.Time { return time.Now().UTC() } }()

		updated, err := service.Update(ctx, video.ID, VideoInput{Title: "Cat", Link: "https://v/cat"})
		require.NoError(t, err)
		assert.Nil(t, updated.CategoryID)
		assert.Nil(t, updated.Category)
		assert.WithinDuration(t, later, updated.UpdatedAt, time.Millisecond)
		assert.True(t, updated.CreatedAt.Equal(video.CreatedAt))
		assert.False(t, updated.Deleted)

		// Replacing the access list keeps the same clock
		later = later.Add(time.Hour)
		updated, err = service.Update(ctx, video.ID, VideoInput{
			Title:          "Cat",
			Link:           "https://v/cat",
			AllowedUserIDs: utils.Some([]string{u1.ID}),
		})
		require.NoError(t, err)
		require.Len(t, updated.AllowedUsers, 1)
		assert.WithinDuration(t, later, updated.UpdatedAt, time.Millisecond)

		var stored models.Video
		require.NoError(t, db.Where("id = ?", video.ID).First(&stored).Error)
		assert.WithinDuration(t, later, stored.UpdatedAt, time.Millisecond)
	})

	t.Run("Update missing", func(t *testing.T) {
		_, err := service.Update(ctx, "missing", VideoInput{Title: "x", Link: "y"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Soft delete", func(t *testing.T) {
		video, err := service.Create(ctx, VideoInput{
			Title:          "Gone",
			Link:           "https://v/gone",
			AllowedUserIDs: utils.Some([]string{u2.ID}),
		})
		require.NoError(t, err)

		require.NoError(t, service.Delete(ctx, video.ID))

		_, err = service.Get(ctx, video.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		// The row and its access list are still stored
		var stored models.Video
		require.NoError(t, db.Where("id = ?", video.ID).First(&stored).Error)
		assert.True(t, stored.Deleted)
		var rows int64
		db.Table("video_user_association").Where("video_id = ?", video.ID).Count(&rows)
		assert.Equal(t, int64(1), rows)

		list, err := service.List(ctx, VideoFilter{})
		require.NoError(t, err)
		for _, v := range list {
			assert.NotEqual(t, video.ID, v.ID)
		}

		// Deleted videos cannot be updated or deleted again
		_, err = service.Update(ctx, video.ID, VideoInput{Title: "Back", Link: "https://v/back"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, service.Delete(ctx, video.ID), ErrNotFound)
	})

	t.Run("Delete missing", func(t *testing.T) {
		assert.ErrorIs(t, service.Delete(ctx, "missing"), ErrNotFound)
	})

	t.Run("List filters", func(t *testing.T) {
		filterDB := setupTestDB()
		svc := NewVideoService(filterDB)
		a, err := NewUserService(filterDB).Create(ctx, newUserDTO("a"))
		require.NoError(t, err)
		cat, err := NewCategoryService(filterDB).Create(ctx, "Filters")
		require.NoError(t, err)

		_, err = svc.Create(ctx, VideoInput{Title: "1", Link: "l1", CategoryID: &cat.ID})
		require.NoError(t, err)
		_, err = svc.Create(ctx, VideoInput{Title: "2", Link: "l2", AllowedUserIDs: utils.Some([]string{a.ID})})
		require.NoError(t, err)
		_, err = svc.Create(ctx, VideoInput{Title: "3", Link: "l3", CategoryID: &cat.ID, AllowedUserIDs: utils.Some([]string{a.ID})})
		require.NoError(t, err)

		all, err := svc.List(ctx, VideoFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		byCategory, err := svc.List(ctx, VideoFilter{CategoryID: cat.ID})
		require.NoError(t, err)
		assert.Len(t, byCategory, 2)

		byUser, err := svc.List(ctx, VideoFilter{UserID: a.ID})
		require.NoError(t, err)
		assert.Len(t, byUser, 2)

		both, err := svc.List(ctx, VideoFilter{CategoryID: cat.ID, UserID: a.ID})
		require.NoError(t, err)
		require.Len(t, both, 1)
		assert.Equal(t, "3", both[0].Title)
	})

	t.Run("DetailedList projection", func(t *testing.T) {
		details, err := service.DetailedList(ctx, VideoFilter{})
		require.NoError(t, err)
		require.NotEmpty(t, details)

		for _, d := range details {
			assert.Equal(t, len(d.AllowedUsers), d.UsersCount)
			assert.NotNil(t, d.AllowedUsers)
			if d.Category != nil {
				require.NotNil(t, d.CategoryID)
				assert.Equal(t, d.Category.ID, *d.CategoryID)
			} else {
				assert.Nil(t, d.CategoryID)
			}
		}
	})

	t.Run("DB Error", func(t *testing.T) {
		dbErr := setupTestDB()
		dbErr.Migrator().DropTable(&models.Video{})
		serviceErr := NewVideoService(dbErr)

		_, err := serviceErr.DetailedList(ctx, VideoFilter{})
		var storageErr *StorageError
		assert.True(t, errors.As(err, &storageErr))

		err = serviceErr.Delete(ctx, "x")
		assert.True(t, errors.As(err, &storageErr))
	})
}

func TestNewVideoDetail(t *testing.T) {
	now := time.Now()

	t.Run("With category and users", func(t *testing.T) {
		detail := NewVideoDetail(models.Video{
			ID:           "v1",
			Title:        "T",
			Link:         "L",
			CategoryID:   strPtr("c1"),
			Category:     &models.Category{ID: "c1", Name: "Cat"},
			AllowedUsers: []models.User{{ID: "u1"}, {ID: "u2"}},
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		assert.Equal(t, "c1", *detail.CategoryID)
		assert.Equal(t, &CategoryRef{ID: "c1", Name: "Cat"}, detail.Category)
		assert.Equal(t, []string{"u1", "u2"}, detail.AllowedUsers)
		assert.Equal(t, 2, detail.UsersCount)
	})

	t.Run("Dangling category reads as null", func(t *testing.T) {
		detail := NewVideoDetail(models.Video{ID: "v2", CategoryID: strPtr("gone")})
		assert.Nil(t, detail.CategoryID)
		assert.Nil(t, detail.Category)
		assert.Equal(t, []string{}, detail.AllowedUsers)
		assert.Equal(t, 0, detail.UsersCount)
	})
}
