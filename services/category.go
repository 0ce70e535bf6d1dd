package services

import (
	"errors"

	"gorm.io/gorm"

	"lms/models"
	course "lms/models/course"
)

// CategoryService is the catalog collaborator: category CRUD plus the
// existence lookup course creation relies on. Unlike completions and
// registrations, a duplicate category name is surfaced as a Conflict, not
// swallowed.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name        string
	Description string
}

// CategorySummary is a category annotated with its course count.
type CategorySummary struct {
	models.Category
	CourseCount int64 `json:"course_count"`
}

func (s *CategoryService) Create(in CategoryInput) (*models.Category, error) {
	var existing models.Category
	err := s.db.Where("name = ?", in.Name).First(&existing).Error
	if err == nil {
		return nil, conflict("category %q already exists", in.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{Name: in.Name, Description: in.Description}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) List() ([]CategorySummary, error) {
	var categories []models.Category
	if err := s.db.Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}

	summaries := make([]CategorySummary, len(categories))
	for i, cat := range categories {
		var count int64
		if err := s.db.Model(&course.Course{}).Where("category_id = ?", cat.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		summaries[i] = CategorySummary{Category: cat, CourseCount: count}
	}
	return summaries, nil
}

func (s *CategoryService) Get(id string) (*CategorySummary, error) {
	var category models.Category
	err := s.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("category %s", id)
		}
		return nil, err
	}

	var count int64
	if err := s.db.Model(&course.Course{}).Where("category_id = ?", id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	return &CategorySummary{Category: category, CourseCount: count}, nil
}

func (s *CategoryService) Update(id string, in CategoryInput) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("category %s", id)
		}
		return nil, err
	}

	if in.Name != "" && in.Name != category.Name {
		var existing models.Category
		err := s.db.Where("name = ?", in.Name).First(&existing).Error
		if err == nil {
			return nil, conflict("category %q already exists", in.Name)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		category.Name = in.Name
	}
	if in.Description != "" {
		category.Description = in.Description
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete refuses to remove a category that still has courses attached.
func (s *CategoryService) Delete(id string) error {
	summary, err := s.Get(id)
	if err != nil {
		return err
	}
	if summary.CourseCount > 0 {
		return conflict("category is used by %d course(s)", summary.CourseCount)
	}
	return s.db.Where("id = ?", id).Delete(&models.Category{}).Error
}
