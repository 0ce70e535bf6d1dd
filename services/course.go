package services

import (
	"errors"

	"gorm.io/gorm"

	"lms/models"
	course "lms/models/course"
)

// CourseService owns course CRUD and catalog queries. A course deletion
// cascades explicitly: everything under it is removed inside one
// transaction, never left dangling.
type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

// CourseInput carries the writable course fields.
type CourseInput struct {
	Title           string
	Description     string
	DifficultyLevel string
	CategoryID      *string
}

// CourseSummary is a course annotated with content counts.
type CourseSummary struct {
	course.Course
	ModuleCount int64 `json:"module_count"`
	LessonCount int64 `json:"lesson_count"`
}

// CourseTree is a course with its full ordered module/lesson hierarchy.
type CourseTree struct {
	course.Course
	Modules []ModuleDetail `json:"modules"`
}

// Create persists a course, validating the category reference when one is
// given.
func (s *CourseService) Create(in CourseInput) (*course.Course, error) {
	if in.CategoryID != nil {
		if err := s.categoryExists(*in.CategoryID); err != nil {
			return nil, err
		}
	}

	crs := course.Course{
		Title:           in.Title,
		Description:     in.Description,
		DifficultyLevel: in.DifficultyLevel,
		CategoryID:      in.CategoryID,
	}
	if err := s.db.Create(&crs).Error; err != nil {
		return nil, err
	}
	return &crs, nil
}

// GetAll lists courses newest first with their category and content counts.
func (s *CourseService) GetAll() ([]CourseSummary, error) {
	var courses []course.Course
	err := s.db.Preload("Category").Order("created_at desc").Find(&courses).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]CourseSummary, len(courses))
	for i, crs := range courses {
		var moduleCount, lessonCount int64
		if err := s.db.Model(&course.Module{}).Where("course_id = ?", crs.ID).
			Count(&moduleCount).Error; err != nil {
			return nil, err
		}
		if err := s.db.Model(&course.Lesson{}).
			Joins("JOIN modules ON modules.id = lessons.module_id").
			Where("modules.course_id = ?", crs.ID).
			Count(&lessonCount).Error; err != nil {
			return nil, err
		}
		summaries[i] = CourseSummary{Course: crs, ModuleCount: moduleCount, LessonCount: lessonCount}
	}
	return summaries, nil
}

// GetWithModules returns the course with its module/lesson tree in
// presentation order.
func (s *CourseService) GetWithModules(courseID string) (*CourseTree, error) {
	var crs course.Course
	err := s.db.Preload("Category").Where("id = ?", courseID).First(&crs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("course %s", courseID)
		}
		return nil, err
	}

	var modules []course.Module
	if err := s.db.Where("course_id = ?", courseID).
		Order("position asc, created_at asc").
		Find(&modules).Error; err != nil {
		return nil, err
	}

	tree := CourseTree{Course: crs, Modules: make([]ModuleDetail, len(modules))}
	for i, mod := range modules {
		var lessons []course.Lesson
		if err := s.db.Where("module_id = ?", mod.ID).
			Order("position asc, created_at asc").
			Find(&lessons).Error; err != nil {
			return nil, err
		}
		tree.Modules[i] = ModuleDetail{Module: mod, Lessons: lessons}
	}
	return &tree, nil
}

// Update applies the non-empty fields of in to the course.
func (s *CourseService) Update(courseID string, in CourseInput) (*course.Course, error) {
	var crs course.Course
	err := s.db.Where("id = ?", courseID).First(&crs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("course %s", courseID)
		}
		return nil, err
	}

	if in.Title != "" {
		crs.Title = in.Title
	}
	if in.Description != "" {
		crs.Description = in.Description
	}
	if in.DifficultyLevel != "" {
		crs.DifficultyLevel = in.DifficultyLevel
	}
	if in.CategoryID != nil {
		if err := s.categoryExists(*in.CategoryID); err != nil {
			return nil, err
		}
		crs.CategoryID = in.CategoryID
	}

	if err := s.db.Save(&crs).Error; err != nil {
		return nil, err
	}
	return &crs, nil
}

// Delete removes the course and everything under it in one transaction:
// lessons with their dependents, modules, scope-attached tests, enrollments
// and completion records.
func (s *CourseService) Delete(courseID string) error {
	if err := courseByID(s.db, courseID); err != nil {
		return err
	}

	var moduleIDs []string
	if err := s.db.Model(&course.Module{}).Where("course_id = ?", courseID).
		Pluck("id", &moduleIDs).Error; err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if len(moduleIDs) > 0 {
			var lessonIDs []string
			if err := tx.Model(&course.Lesson{}).Where("module_id IN ?", moduleIDs).
				Pluck("id", &lessonIDs).Error; err != nil {
				return err
			}
			if len(lessonIDs) > 0 {
				if err := deleteLessonDependents(tx, lessonIDs); err != nil {
					return err
				}
				if err := tx.Where("module_id IN ?", moduleIDs).
					Delete(&course.Lesson{}).Error; err != nil {
					return err
				}
			}
			if err := deleteTestsByScope(tx, course.ScopeModule, moduleIDs); err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", courseID).Delete(&course.Module{}).Error; err != nil {
				return err
			}
		}
		if err := deleteTestsByScope(tx, course.ScopeCourse, []string{courseID}); err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).
			Delete(&course.LessonCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).
			Delete(&course.Enrollment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", courseID).Delete(&course.Course{}).Error
	})
}

func (s *CourseService) categoryExists(categoryID string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound("category %s", categoryID)
	}
	return nil
}
