package comment

import (
	"fmt"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.PostModel{},
		&models.CommentModel{},
	))
	return db
}

func seedPost(t *testing.T, db *gorm.DB) *models.PostModel {
	t.Helper()
	p := &models.PostModel{
		Title:      "a post",
		Content:    "body",
		AuthorID:   "author-1",
		CategoryID: "cat-1",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestAppendComment(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedPost(t, db)

	seq, err := svc.Append(p.ID, "commenter-1", "first!")
	require.NoError(t, err)
	require.Len(t, seq, 1)
	assert.Equal(t, "first!", seq[0].Content)
	assert.Equal(t, "commenter-1", seq[0].UserID)
	assert.False(t, seq[0].CreatedAt.IsZero())

	seq, err = svc.Append(p.ID, "commenter-2", "second")
	require.NoError(t, err)
	assert.Len(t, seq, 2)
}

func TestAppendCommentTrimsContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedPost(t, db)

	seq, err := svc.Append(p.ID, "commenter-1", "  padded  ")
	require.NoError(t, err)
	require.Len(t, seq, 1)
	assert.Equal(t, "padded", seq[0].Content)
}

func TestAppendEmptyCommentRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedPost(t, db)

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := svc.Append(p.ID, "commenter-1", content)
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	}

	// Nothing was written.
	seq, err := svc.Sequence(p.ID)
	require.NoError(t, err)
	assert.Len(t, seq, 0)
}

func TestAppendToMissingPost(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Append("no-such-post", "commenter-1", "hello")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestSequenceOrderedOldestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	p := seedPost(t, db)

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"one", "two", "three"} {
		cm := models.CommentModel{PostID: p.ID, UserID: "u", Content: content}
		cm.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&cm).Error)
	}

	seq, err := svc.Sequence(p.ID)
	require.NoError(t, err)
	require.Len(t, seq, 3)
	assert.Equal(t, "one", seq[0].Content)
	assert.Equal(t, "two", seq[1].Content)
	assert.Equal(t, "three", seq[2].Content)
}
