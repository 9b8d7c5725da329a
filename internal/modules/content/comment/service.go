// Package comment implements the append-only comment sequence embedded in a
// post. Comments have no lifecycle of their own: no edit, no delete, no
// standalone lookup.
package comment

import (
	"strings"

	"github.com/inkstone/core/internal/models"
	"github.com/inkstone/core/internal/pkg/apperr"
	"gorm.io/gorm"
)

// AppendCommentDTO is the request body for appending a comment.
type AppendCommentDTO struct {
	Content string `json:"content" binding:"required"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Append adds a comment to a post and returns the full updated sequence,
// oldest first. Content that trims to empty is rejected before anything is
// written.
func (s *Service) Append(postID, authorID, content string) ([]models.CommentModel, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.InvalidInput("comment content is required")
	}

	var count int64
	if err := s.db.Model(&models.PostModel{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, apperr.FromStore("check post", err)
	}
	if count == 0 {
		return nil, apperr.NotFound("post not found")
	}

	cm := models.CommentModel{
		PostID:  postID,
		UserID:  authorID,
		Content: content,
	}
	if err := s.db.Create(&cm).Error; err != nil {
		return nil, apperr.FromStore("append comment", err)
	}

	return s.Sequence(postID)
}

// Sequence returns a post's comments in insertion order with their authors
// resolved.
func (s *Service) Sequence(postID string) ([]models.CommentModel, error) {
	var comments []models.CommentModel
	err := s.db.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperr.FromStore("list comments", err)
	}
	return comments, nil
}
