package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lms/models"
	course "lms/models/course"
)

// EnrollmentService owns the enrollment lifecycle and progress-summary
// queries. Progress itself is written only by the CompletionService; this
// service reads the cached value and the ledger.
type EnrollmentService struct {
	db *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// EnrolledCourse is an enrollment annotated with its course summary.
type EnrolledCourse struct {
	Enrollment  course.Enrollment `json:"enrollment"`
	Course      course.Course     `json:"course"`
	ModuleCount int64             `json:"module_count"`
	LessonCount int64             `json:"lesson_count"`
}

// EnrolledCourseDetail additionally carries the last-viewed lesson and the
// title of its owning module.
type EnrolledCourseDetail struct {
	EnrolledCourse
	LastLesson  *course.Lesson `json:"last_lesson,omitempty"`
	ModuleTitle string         `json:"module_title,omitempty"`
}

// CourseProgress is the cached progress plus the completed lesson IDs
// derived from the ledger.
type CourseProgress struct {
	Progress           float64  `json:"progress"`
	CompletedLessonIDs []string `json:"completed_lesson_ids"`
}

// Register enrolls a user in a course. Registering twice for the same pair
// is not an error: the existing enrollment is returned unchanged. The
// storage-level unique index on (user_id, course_id) closes the race
// between two concurrent first registrations.
func (s *EnrollmentService) Register(courseID, userID string) (*course.Enrollment, error) {
	var user models.User
	if err := s.db.Select("id").Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user %s", userID)
		}
		return nil, err
	}
	if err := courseByID(s.db, courseID); err != nil {
		return nil, err
	}

	var existing course.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := course.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   course.EnrollmentActive,
		Progress: 0,
	}
	res := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race to a concurrent registration; return that one.
		if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&enrollment).Error; err != nil {
			return nil, err
		}
	}
	return &enrollment, nil
}

// CheckRegistration reports whether the user is enrolled. It never fails
// with NotFound; absence is a normal answer.
func (s *EnrollmentService) CheckRegistration(userID, courseID string) (bool, *course.Enrollment, error) {
	var enrollment course.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}
	return true, &enrollment, nil
}

// UpdateLastLesson records the last lesson the user viewed. The lesson must
// structurally belong to the enrolled course.
func (s *EnrollmentService) UpdateLastLesson(userID, courseID, lessonID string) error {
	var enrollment course.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("enrollment for user %s in course %s", userID, courseID)
		}
		return err
	}

	lesson, err := lessonInCourse(s.db, courseID, lessonID)
	if err != nil {
		return err
	}

	enrollment.LastLessonID = &lesson.ID
	return s.db.Save(&enrollment).Error
}

// ListEnrolled returns the user's enrollments, most recent first, each with
// its course and content counts.
func (s *EnrollmentService) ListEnrolled(userID string) ([]EnrolledCourse, error) {
	enrollments, err := s.enrollmentsFor(userID)
	if err != nil {
		return nil, err
	}

	out := make([]EnrolledCourse, 0, len(enrollments))
	for _, enr := range enrollments {
		annotated, err := s.annotate(enr)
		if err != nil {
			return nil, err
		}
		out = append(out, *annotated)
	}
	return out, nil
}

// ListEnrolledWithLastLesson is ListEnrolled plus the last-viewed lesson and
// its owning module's title.
func (s *EnrollmentService) ListEnrolledWithLastLesson(userID string) ([]EnrolledCourseDetail, error) {
	enrollments, err := s.enrollmentsFor(userID)
	if err != nil {
		return nil, err
	}

	out := make([]EnrolledCourseDetail, 0, len(enrollments))
	for _, enr := range enrollments {
		annotated, err := s.annotate(enr)
		if err != nil {
			return nil, err
		}

		detail := EnrolledCourseDetail{EnrolledCourse: *annotated}
		if enr.LastLessonID != nil {
			var lesson course.Lesson
			if err := s.db.Where("id = ?", *enr.LastLessonID).First(&lesson).Error; err == nil {
				detail.LastLesson = &lesson
				var module course.Module
				if err := s.db.Select("title").Where("id = ?", lesson.ModuleID).
					First(&module).Error; err == nil {
					detail.ModuleTitle = module.Title
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		out = append(out, detail)
	}
	return out, nil
}

// GetProgress returns the cached progress together with the completed
// lesson IDs from the ledger.
func (s *EnrollmentService) GetProgress(userID, courseID string) (*CourseProgress, error) {
	var enrollment course.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("enrollment for user %s in course %s", userID, courseID)
		}
		return nil, err
	}

	var lessonIDs []string
	if err := s.db.Model(&course.LessonCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Pluck("lesson_id", &lessonIDs).Error; err != nil {
		return nil, err
	}

	return &CourseProgress{Progress: enrollment.Progress, CompletedLessonIDs: lessonIDs}, nil
}

func (s *EnrollmentService) enrollmentsFor(userID string) ([]course.Enrollment, error) {
	var enrollments []course.Enrollment
	err := s.db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (s *EnrollmentService) annotate(enr course.Enrollment) (*EnrolledCourse, error) {
	var crs course.Course
	if err := s.db.Where("id = ?", enr.CourseID).First(&crs).Error; err != nil {
		return nil, err
	}

	var moduleCount, lessonCount int64
	if err := s.db.Model(&course.Module{}).Where("course_id = ?", enr.CourseID).
		Count(&moduleCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&course.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", enr.CourseID).
		Count(&lessonCount).Error; err != nil {
		return nil, err
	}

	return &EnrolledCourse{
		Enrollment:  enr,
		Course:      crs,
		ModuleCount: moduleCount,
		LessonCount: lessonCount,
	}, nil
}
