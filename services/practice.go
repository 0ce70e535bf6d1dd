package services

import (
	"errors"

	"gorm.io/gorm"

	course "lms/models/course"
)

// PracticeService manages the practice exercises attached to lessons.
type PracticeService struct {
	db *gorm.DB
}

func NewPracticeService(db *gorm.DB) *PracticeService {
	return &PracticeService{db: db}
}

// PracticeInput carries the writable practice fields.
type PracticeInput struct {
	Title       string
	Description string
}

func (s *PracticeService) Create(lessonID string, in PracticeInput) (*course.Practice, error) {
	var lesson course.Lesson
	if err := s.db.Select("id").Where("id = ?", lessonID).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("lesson %s", lessonID)
		}
		return nil, err
	}

	practice := course.Practice{
		LessonID:    lessonID,
		Title:       in.Title,
		Description: in.Description,
	}
	if err := s.db.Create(&practice).Error; err != nil {
		return nil, err
	}
	return &practice, nil
}

func (s *PracticeService) ListByLesson(lessonID string) ([]course.Practice, error) {
	var practices []course.Practice
	err := s.db.Where("lesson_id = ?", lessonID).
		Order("created_at asc").
		Find(&practices).Error
	if err != nil {
		return nil, err
	}
	return practices, nil
}

func (s *PracticeService) Get(id string) (*course.Practice, error) {
	var practice course.Practice
	err := s.db.Where("id = ?", id).First(&practice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("practice %s", id)
		}
		return nil, err
	}
	return &practice, nil
}

func (s *PracticeService) Update(id string, in PracticeInput) (*course.Practice, error) {
	practice, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		practice.Title = in.Title
	}
	if in.Description != "" {
		practice.Description = in.Description
	}

	if err := s.db.Save(practice).Error; err != nil {
		return nil, err
	}
	return practice, nil
}

func (s *PracticeService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.db.Where("id = ?", id).Delete(&course.Practice{}).Error
}
