package category

import (
	"fmt"
	"testing"

	"github.com/inkstone/core/internal/models"
	"github.com/inkstone/core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.CategoryModel{}, &models.PostModel{}))
	return db
}

func TestCreateCategory(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	cat, err := svc.Create(&CreateCategoryDTO{Name: "Tech", Description: "tech posts"})
	require.NoError(t, err)
	assert.Equal(t, "Tech", cat.Name)
	assert.Equal(t, "tech", cat.Slug)
	assert.Equal(t, "#007bff", cat.Color)
	assert.Equal(t, 0, cat.PostCount)

	_, err = svc.Create(&CreateCategoryDTO{Name: "Tech"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Name uniqueness is case-sensitive exact match.
	_, err = svc.Create(&CreateCategoryDTO{Name: "tech"})
	require.NoError(t, err)
}

func TestUpdateCategoryNameCollision(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	a, err := svc.Create(&CreateCategoryDTO{Name: "Go"})
	require.NoError(t, err)
	_, err = svc.Create(&CreateCategoryDTO{Name: "Rust"})
	require.NoError(t, err)

	name := "Rust"
	_, err = svc.Update(a.ID, &UpdateCategoryDTO{Name: &name})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// Renaming to its own current name is not a collision.
	same := "Go"
	_, err = svc.Update(a.ID, &UpdateCategoryDTO{Name: &same})
	require.NoError(t, err)

	desc := "systems"
	got, err := svc.Update(a.ID, &UpdateCategoryDTO{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "systems", got.Description)
}

func TestDeleteCategoryBlockedByPosts(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	cat, err := svc.Create(&CreateCategoryDTO{Name: "Tech"})
	require.NoError(t, err)

	require.NoError(t, svc.AdjustCount(cat.ID, +1))
	err = svc.Delete(cat.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	require.NoError(t, svc.AdjustCount(cat.ID, -1))
	require.NoError(t, svc.Delete(cat.ID))

	_, err = svc.GetByID(cat.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAdjustCount(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	cat, err := svc.Create(&CreateCategoryDTO{Name: "Tech"})
	require.NoError(t, err)

	require.NoError(t, svc.AdjustCount(cat.ID, +1))
	require.NoError(t, svc.AdjustCount(cat.ID, +1))
	require.NoError(t, svc.AdjustCount(cat.ID, -1))

	got, err := svc.GetByID(cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PostCount)
}

func TestAdjustCountClampsAtZero(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	cat, err := svc.Create(&CreateCategoryDTO{Name: "Tech"})
	require.NoError(t, err)

	// Underflow clamps instead of failing or going negative.
	require.NoError(t, svc.AdjustCount(cat.ID, -1))

	got, err := svc.GetByID(cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PostCount)
}

func TestAdjustCountMissingCategory(t *testing.T) {
	svc := NewService(newTestDB(t), nil)

	err := svc.AdjustCount("no-such-id", +1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello World"))
	assert.Equal(t, "go-1-24", Slugify("  Go 1.24! "))
	assert.Equal(t, "tech", Slugify("Tech"))
}
