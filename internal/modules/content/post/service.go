package post

import (
	"errors"
	"strings"

	"github.com/inkstone/core/internal/models"
	"github.com/inkstone/core/internal/modules/auth/guard"
	"github.com/inkstone/core/internal/modules/content/category"
	"github.com/inkstone/core/internal/pkg/apperr"
	"github.com/inkstone/core/internal/pkg/pagination"
	"github.com/inkstone/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service owns posts. Category counter changes are delegated to the category
// service, never written directly; ownership checks are delegated to the
// guard policy.
type Service struct {
	db     *gorm.DB
	cats   *category.Service
	logger *zap.Logger
}

func NewService(db *gorm.DB, cats *category.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, cats: cats, logger: logger}
}

// List returns a page of posts, newest first. The default is published-only
// for every caller; authenticated callers may request unpublished posts
// explicitly, unauthenticated callers never see them.
func (s *Service) List(q pagination.Query, lq ListQuery, authenticated bool) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).
		Preload("Author").
		Preload("Category").
		Order("created_at DESC")

	if lq.Category != nil && *lq.Category != "" {
		tx = tx.Where("category_id = ?", *lq.Category)
	}

	switch {
	case lq.Published == nil:
		tx = tx.Where("is_published = ?", true)
	case !*lq.Published && !authenticated:
		// Unpublished drafts are not public.
		tx = tx.Where("is_published = ?", true)
	default:
		tx = tx.Where("is_published = ?", *lq.Published)
	}

	if lq.Search != nil && strings.TrimSpace(*lq.Search) != "" {
		needle := "%" + strings.ToLower(strings.TrimSpace(*lq.Search)) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(tags) LIKE ?",
			needle, needle, needle)
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	if err != nil {
		return nil, response.Pagination{}, apperr.FromStore("list posts", err)
	}
	return posts, pag, nil
}

// Get fetches a post with author, category and the full comment sequence
// resolved. Every successful fetch increments the view counter by exactly
// one, atomically at the store level. Repeat fetches from the same viewer
// increment repeatedly; no dedup window exists.
func (s *Service) Get(id string) (*models.PostModel, error) {
	res := s.db.Model(&models.PostModel{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return nil, apperr.FromStore("increment view count", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("post not found")
	}

	var post models.PostModel
	err := s.db.
		Preload("Author").
		Preload("Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.User").
		First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.FromStore("get post", err)
	}
	return &post, nil
}

// getOwned loads a post without side effects, for mutation paths.
func (s *Service) getOwned(id string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.FromStore("get post", err)
	}
	return &post, nil
}

// Create inserts a post for the author and increments the category counter.
// The counter moves only after the insert succeeded. A failed increment does
// not roll the post back: it is returned as a partial-failure so the caller
// can surface it.
func (s *Service) Create(authorID string, dto *CreatePostDTO) (post *models.PostModel, partial error, err error) {
	ok, err := s.cats.Exists(dto.CategoryID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, apperr.NotFound("category not found")
	}

	p := models.PostModel{
		Title:         dto.Title,
		Content:       dto.Content,
		Excerpt:       dto.Excerpt,
		FeaturedImage: dto.FeaturedImage,
		Tags:          dto.Tags,
		AuthorID:      authorID,
		CategoryID:    dto.CategoryID,
	}
	if dto.IsPublished != nil {
		p.IsPublished = *dto.IsPublished
	}

	if err := s.db.Create(&p).Error; err != nil {
		return nil, nil, apperr.FromStore("create post", err)
	}

	if adjErr := s.cats.AdjustCount(dto.CategoryID, +1); adjErr != nil {
		s.logger.Warn("post created but category count increment failed",
			zap.String("post_id", p.ID),
			zap.String("category_id", dto.CategoryID),
			zap.Error(adjErr),
		)
		return &p, adjErr, nil
	}
	return &p, nil, nil
}

// Update patches a post. The guard policy runs before anything else. When the
// category is reassigned, the new category is validated, then the old counter
// is decremented and the new one incremented, in that order.
func (s *Service) Update(id, callerID, callerRole string, dto *UpdatePostDTO) (*models.PostModel, error) {
	post, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	if err := guard.RequirePostMutation(callerID, callerRole, post.AuthorID); err != nil {
		return nil, err
	}

	if dto.CategoryID != nil && *dto.CategoryID != post.CategoryID {
		ok, err := s.cats.Exists(*dto.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.NotFound("category not found")
		}
		if err := s.cats.AdjustCount(post.CategoryID, -1); err != nil {
			return nil, err
		}
		if err := s.cats.AdjustCount(*dto.CategoryID, +1); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.Content != nil {
		updates["content"] = *dto.Content
	}
	if dto.CategoryID != nil {
		updates["category_id"] = *dto.CategoryID
	}
	if dto.Excerpt != nil {
		updates["excerpt"] = *dto.Excerpt
	}
	if dto.FeaturedImage != nil {
		updates["featured_image"] = *dto.FeaturedImage
	}
	if dto.Tags != nil {
		updates["tags"] = models.StringSlice(dto.Tags)
	}
	if dto.IsPublished != nil {
		updates["is_published"] = *dto.IsPublished
	}

	if len(updates) > 0 {
		if err := s.db.Model(post).Updates(updates).Error; err != nil {
			return nil, apperr.FromStore("update post", err)
		}
	}
	return s.getResolved(id)
}

// Delete removes a post after the guard check. The category counter is
// decremented before the row is removed, so a crash between the two steps is
// the only window where the counter can transiently drift. A failed decrement
// does not block the delete; it is reported as a partial failure.
func (s *Service) Delete(id, callerID, callerRole string) (partial error, err error) {
	post, err := s.getOwned(id)
	if err != nil {
		return nil, err
	}
	if err := guard.RequirePostMutation(callerID, callerRole, post.AuthorID); err != nil {
		return nil, err
	}

	adjErr := s.cats.AdjustCount(post.CategoryID, -1)
	if adjErr != nil {
		s.logger.Warn("category count decrement failed before post delete",
			zap.String("post_id", id),
			zap.String("category_id", post.CategoryID),
			zap.Error(adjErr),
		)
	}

	if err := s.db.Where("post_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
		return adjErr, apperr.FromStore("delete post comments", err)
	}
	if err := s.db.Delete(&models.PostModel{}, "id = ?", id).Error; err != nil {
		return adjErr, apperr.FromStore("delete post", err)
	}
	return adjErr, nil
}

// getResolved loads a post with its references resolved, without touching the
// view counter.
func (s *Service) getResolved(id string) (*models.PostModel, error) {
	var post models.PostModel
	err := s.db.Preload("Author").Preload("Category").First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.FromStore("get post", err)
	}
	return &post, nil
}
