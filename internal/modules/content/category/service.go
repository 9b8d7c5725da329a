package category

import (
	"errors"
	"regexp"
	"strings"

	"github.com/inkstone/core/internal/models"
	"github.com/inkstone/core/internal/pkg/apperr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateCategoryDTO struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=200"`
	Color       string `json:"color"`
}

type UpdateCategoryDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

const defaultColor = "#007bff"

// Service owns categories and their denormalized post counter. AdjustCount is
// the only code path allowed to change post_count.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

// List returns all categories ordered by name.
func (s *Service) List() ([]models.CategoryModel, error) {
	var cats []models.CategoryModel
	if err := s.db.Order("name ASC").Find(&cats).Error; err != nil {
		return nil, apperr.FromStore("list categories", err)
	}
	return cats, nil
}

// GetByID fetches a single category.
func (s *Service) GetByID(id string) (*models.CategoryModel, error) {
	var cat models.CategoryModel
	if err := s.db.First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, apperr.FromStore("get category", err)
	}
	return &cat, nil
}

// Exists reports whether a category id references an existing category.
func (s *Service) Exists(id string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperr.FromStore("check category", err)
	}
	return count > 0, nil
}

// Create inserts a new category with a zero post counter.
// Name uniqueness is a case-sensitive exact match.
func (s *Service) Create(dto *CreateCategoryDTO) (*models.CategoryModel, error) {
	var count int64
	if err := s.db.Model(&models.CategoryModel{}).Where("name = ?", dto.Name).Count(&count).Error; err != nil {
		return nil, apperr.FromStore("check category name", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("category already exists")
	}

	color := dto.Color
	if color == "" {
		color = defaultColor
	}
	cat := models.CategoryModel{
		Name:        dto.Name,
		Slug:        Slugify(dto.Name),
		Description: dto.Description,
		Color:       color,
	}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, apperr.FromStore("create category", err)
	}
	return &cat, nil
}

// Update patches a category. A name change re-checks uniqueness against all
// other categories excluding itself.
func (s *Service) Update(id string, dto *UpdateCategoryDTO) (*models.CategoryModel, error) {
	cat, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil && *dto.Name != cat.Name {
		var count int64
		if err := s.db.Model(&models.CategoryModel{}).
			Where("name = ? AND id <> ?", *dto.Name, id).Count(&count).Error; err != nil {
			return nil, apperr.FromStore("check category name", err)
		}
		if count > 0 {
			return nil, apperr.Conflict("category name already exists")
		}
		updates["name"] = *dto.Name
		updates["slug"] = Slugify(*dto.Name)
		cat.Name = *dto.Name
		cat.Slug = Slugify(*dto.Name)
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
		cat.Description = *dto.Description
	}
	if dto.Color != nil {
		updates["color"] = *dto.Color
		cat.Color = *dto.Color
	}
	if len(updates) == 0 {
		return cat, nil
	}
	if err := s.db.Model(cat).Updates(updates).Error; err != nil {
		return nil, apperr.FromStore("update category", err)
	}
	return cat, nil
}

// Delete removes a category. A category that still has posts cannot be
// deleted.
func (s *Service) Delete(id string) error {
	cat, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if cat.PostCount > 0 {
		return apperr.Conflict("cannot delete category with existing posts")
	}
	if err := s.db.Delete(&models.CategoryModel{}, "id = ?", id).Error; err != nil {
		return apperr.FromStore("delete category", err)
	}
	return nil
}

// AdjustCount applies an atomic delta to a category's post counter. The
// increment happens in a single UPDATE so concurrent post creations against
// the same category never lose updates; read-then-write is not allowed here.
// A delta that would drive the counter negative clamps it to zero instead of
// failing: that state means the counter drifted and is logged as a warning.
func (s *Service) AdjustCount(id string, delta int) error {
	res := s.db.Model(&models.CategoryModel{}).
		Where("id = ? AND post_count + ? >= 0", id, delta).
		UpdateColumn("post_count", gorm.Expr("post_count + ?", delta))
	if res.Error != nil {
		return apperr.FromStore("adjust post count", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Either the category is gone or the delta would underflow.
	ok, err := s.Exists(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("category not found")
	}
	clamp := s.db.Model(&models.CategoryModel{}).
		Where("id = ?", id).
		UpdateColumn("post_count", 0)
	if clamp.Error != nil {
		return apperr.FromStore("clamp post count", clamp.Error)
	}
	s.logger.Warn("post count would go negative, clamped to zero",
		zap.String("category_id", id),
		zap.Int("delta", delta),
	)
	return nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a category name.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
