package services

import (
	"errors"

	"gorm.io/gorm"

	course "lms/models/course"
)

// ContentService owns the Course → Module → Lesson tree and its positional
// ordering. Every operation that names a child together with a claimed
// parent verifies the relationship; a child attached to a different parent
// is NotFound, indistinguishable from a child that does not exist.
type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

// ModuleInput carries the writable module fields. A nil Position means
// "append at the end".
type ModuleInput struct {
	Title       string
	Description string
	Position    *int
}

// LessonInput mirrors ModuleInput for lessons.
type LessonInput struct {
	Title    string
	Content  string
	Position *int
}

// ModuleSummary is a module annotated with its lesson count.
type ModuleSummary struct {
	course.Module
	LessonCount int64 `json:"lesson_count"`
}

// ModuleDetail is a module with its lessons in presentation order.
type ModuleDetail struct {
	course.Module
	Lessons []course.Lesson `json:"lessons"`
}

// CreateModule adds a module to a course. When no position is supplied the
// module goes after the current last sibling, or at 0 in an empty course.
func (s *ContentService) CreateModule(courseID string, in ModuleInput) (*ModuleSummary, error) {
	if err := courseByID(s.db, courseID); err != nil {
		return nil, err
	}

	position, err := s.resolvePosition(in.Position, &course.Module{}, "course_id = ?", courseID)
	if err != nil {
		return nil, err
	}

	module := course.Module{
		CourseID:    courseID,
		Title:       in.Title,
		Description: in.Description,
		Position:    position,
	}
	if err := s.db.Create(&module).Error; err != nil {
		return nil, err
	}

	return &ModuleSummary{Module: module, LessonCount: 0}, nil
}

// ListModules returns the course's modules in presentation order, each with
// its lesson count.
func (s *ContentService) ListModules(courseID string) ([]ModuleSummary, error) {
	if err := courseByID(s.db, courseID); err != nil {
		return nil, err
	}

	var modules []course.Module
	if err := s.db.Where("course_id = ?", courseID).
		Order("position asc, created_at asc").
		Find(&modules).Error; err != nil {
		return nil, err
	}

	summaries := make([]ModuleSummary, len(modules))
	for i, mod := range modules {
		var count int64
		if err := s.db.Model(&course.Lesson{}).Where("module_id = ?", mod.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		summaries[i] = ModuleSummary{Module: mod, LessonCount: count}
	}
	return summaries, nil
}

// GetModule returns a module with its lessons in presentation order.
func (s *ContentService) GetModule(courseID, moduleID string) (*ModuleDetail, error) {
	module, err := moduleInCourse(s.db, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	var lessons []course.Lesson
	if err := s.db.Where("module_id = ?", moduleID).
		Order("position asc, created_at asc").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return &ModuleDetail{Module: *module, Lessons: lessons}, nil
}

// UpdateModule applies the non-empty fields of in to the module.
func (s *ContentService) UpdateModule(courseID, moduleID string, in ModuleInput) (*course.Module, error) {
	module, err := moduleInCourse(s.db, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		module.Title = in.Title
	}
	if in.Description != "" {
		module.Description = in.Description
	}
	if in.Position != nil {
		if *in.Position < 0 {
			return nil, invalid("position must be non-negative")
		}
		module.Position = *in.Position
	}

	if err := s.db.Save(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

// DeleteModule removes a module and everything under it: lessons, their
// practices and completion records, and any tests scoped to the module or
// its lessons. Returns the number of cascaded lessons.
func (s *ContentService) DeleteModule(courseID, moduleID string) (int64, error) {
	if _, err := moduleInCourse(s.db, courseID, moduleID); err != nil {
		return 0, err
	}

	var lessonIDs []string
	if err := s.db.Model(&course.Lesson{}).Where("module_id = ?", moduleID).
		Pluck("id", &lessonIDs).Error; err != nil {
		return 0, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(lessonIDs) > 0 {
			if err := deleteLessonDependents(tx, lessonIDs); err != nil {
				return err
			}
			if err := tx.Where("module_id = ?", moduleID).Delete(&course.Lesson{}).Error; err != nil {
				return err
			}
		}
		if err := deleteTestsByScope(tx, course.ScopeModule, []string{moduleID}); err != nil {
			return err
		}
		return tx.Where("id = ?", moduleID).Delete(&course.Module{}).Error
	})
	if err != nil {
		return 0, err
	}
	return int64(len(lessonIDs)), nil
}

// ReorderModule writes the requested position verbatim. Siblings are not
// renumbered; callers wanting a strict total order must reposition every
// sibling themselves.
func (s *ContentService) ReorderModule(courseID, moduleID string, position int) (*course.Module, error) {
	if position < 0 {
		return nil, invalid("position must be non-negative")
	}
	module, err := moduleInCourse(s.db, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	module.Position = position
	if err := s.db.Save(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

// CreateLesson adds a lesson to a module, verifying the module belongs to
// the claimed course. Position defaults mirror CreateModule.
func (s *ContentService) CreateLesson(courseID, moduleID string, in LessonInput) (*course.Lesson, error) {
	if _, err := moduleInCourse(s.db, courseID, moduleID); err != nil {
		return nil, err
	}

	position, err := s.resolvePosition(in.Position, &course.Lesson{}, "module_id = ?", moduleID)
	if err != nil {
		return nil, err
	}

	lesson := course.Lesson{
		ModuleID: moduleID,
		Title:    in.Title,
		Content:  in.Content,
		Position: position,
	}
	if err := s.db.Create(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// ListLessons returns a module's lessons in presentation order.
func (s *ContentService) ListLessons(courseID, moduleID string) ([]course.Lesson, error) {
	if _, err := moduleInCourse(s.db, courseID, moduleID); err != nil {
		return nil, err
	}

	var lessons []course.Lesson
	if err := s.db.Where("module_id = ?", moduleID).
		Order("position asc, created_at asc").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

// GetLesson returns a lesson after verifying the full chain
// course → module → lesson.
func (s *ContentService) GetLesson(courseID, moduleID, lessonID string) (*course.Lesson, error) {
	return lessonInModule(s.db, courseID, moduleID, lessonID)
}

// UpdateLesson applies the non-empty fields of in to the lesson.
func (s *ContentService) UpdateLesson(courseID, moduleID, lessonID string, in LessonInput) (*course.Lesson, error) {
	lesson, err := lessonInModule(s.db, courseID, moduleID, lessonID)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		lesson.Title = in.Title
	}
	if in.Content != "" {
		lesson.Content = in.Content
	}
	if in.Position != nil {
		if *in.Position < 0 {
			return nil, invalid("position must be non-negative")
		}
		lesson.Position = *in.Position
	}

	if err := s.db.Save(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson removes a lesson together with its practices, completion
// records and any test scoped to it.
func (s *ContentService) DeleteLesson(courseID, moduleID, lessonID string) error {
	if _, err := lessonInModule(s.db, courseID, moduleID, lessonID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteLessonDependents(tx, []string{lessonID}); err != nil {
			return err
		}
		return tx.Where("id = ?", lessonID).Delete(&course.Lesson{}).Error
	})
}

// ReorderLesson writes the requested position verbatim, like ReorderModule.
func (s *ContentService) ReorderLesson(courseID, moduleID, lessonID string, position int) (*course.Lesson, error) {
	if position < 0 {
		return nil, invalid("position must be non-negative")
	}
	lesson, err := lessonInModule(s.db, courseID, moduleID, lessonID)
	if err != nil {
		return nil, err
	}

	lesson.Position = position
	if err := s.db.Save(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

// AttachMaterial persists the URL returned by the blob-storage collaborator
// onto the lesson. File contents are never inspected here.
func (s *ContentService) AttachMaterial(courseID, moduleID, lessonID, url string) (*course.Lesson, error) {
	lesson, err := lessonInModule(s.db, courseID, moduleID, lessonID)
	if err != nil {
		return nil, err
	}

	lesson.MaterialURL = url
	if err := s.db.Save(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

// resolvePosition returns the explicit position when given, otherwise
// 1 + max(sibling positions), or 0 when the parent has no children.
func (s *ContentService) resolvePosition(explicit *int, model interface{}, query string, arg string) (int, error) {
	if explicit != nil {
		if *explicit < 0 {
			return 0, invalid("position must be non-negative")
		}
		return *explicit, nil
	}

	var last struct{ Position int }
	err := s.db.Model(model).Where(query, arg).
		Order("position desc").Limit(1).
		Select("position").Scan(&last).Error
	if err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.Model(model).Where(query, arg).Count(&count).Error; err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}
	return last.Position + 1, nil
}

// --- structural membership helpers, shared across services ---

func courseByID(db *gorm.DB, courseID string) error {
	var crs course.Course
	if err := db.Select("id").Where("id = ?", courseID).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("course %s", courseID)
		}
		return err
	}
	return nil
}

// moduleInCourse fetches a module only when it belongs to the claimed
// course. A module under another course is NotFound, same as a missing one.
func moduleInCourse(db *gorm.DB, courseID, moduleID string) (*course.Module, error) {
	var module course.Module
	err := db.Where("id = ? AND course_id = ?", moduleID, courseID).First(&module).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("module %s in course %s", moduleID, courseID)
		}
		return nil, err
	}
	return &module, nil
}

func lessonInModule(db *gorm.DB, courseID, moduleID, lessonID string) (*course.Lesson, error) {
	if _, err := moduleInCourse(db, courseID, moduleID); err != nil {
		return nil, err
	}

	var lesson course.Lesson
	err := db.Where("id = ? AND module_id = ?", lessonID, moduleID).First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("lesson %s in module %s", lessonID, moduleID)
		}
		return nil, err
	}
	return &lesson, nil
}

// lessonInCourse checks membership through the owning module without a
// claimed module ID.
func lessonInCourse(db *gorm.DB, courseID, lessonID string) (*course.Lesson, error) {
	var lesson course.Lesson
	err := db.Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("lessons.id = ? AND modules.course_id = ?", lessonID, courseID).
		First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("lesson %s in course %s", lessonID, courseID)
		}
		return nil, err
	}
	return &lesson, nil
}

// deleteLessonDependents removes everything hanging off the given lessons:
// practices, completion records and lesson-scoped tests.
func deleteLessonDependents(tx *gorm.DB, lessonIDs []string) error {
	if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&course.Practice{}).Error; err != nil {
		return err
	}
	if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&course.LessonCompletion{}).Error; err != nil {
		return err
	}
	return deleteTestsByScope(tx, course.ScopeLesson, lessonIDs)
}

// deleteTestsByScope removes tests attached to the given scope nodes along
// with their question/answer trees and results.
func deleteTestsByScope(tx *gorm.DB, scopeType string, scopeIDs []string) error {
	var testIDs []string
	if err := tx.Model(&course.Test{}).
		Where("scope_type = ? AND scope_id IN ?", scopeType, scopeIDs).
		Pluck("id", &testIDs).Error; err != nil {
		return err
	}
	if len(testIDs) == 0 {
		return nil
	}
	return deleteTestTrees(tx, testIDs)
}

func deleteTestTrees(tx *gorm.DB, testIDs []string) error {
	var questionIDs []string
	if err := tx.Model(&course.Question{}).Where("test_id IN ?", testIDs).
		Pluck("id", &questionIDs).Error; err != nil {
		return err
	}
	if len(questionIDs) > 0 {
		if err := tx.Where("question_id IN ?", questionIDs).Delete(&course.Answer{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("test_id IN ?", testIDs).Delete(&course.Question{}).Error; err != nil {
		return err
	}
	if err := tx.Where("test_id IN ?", testIDs).Delete(&course.UserTestResult{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", testIDs).Delete(&course.Test{}).Error
}
