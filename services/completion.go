package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	course "lms/models/course"
)

// CompletionService records lesson completions and keeps the cached
// enrollment progress consistent with the ledger. CompleteLesson is safe to
// call any number of times with the same arguments: the completion insert
// collapses on a unique index and progress is re-derived from scratch on
// every call, never incremented.
type CompletionService struct {
	db *gorm.DB
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	return &CompletionService{db: db}
}

// CompleteLesson marks a lesson complete for the user and returns the
// recomputed course progress. The insert-recount-write sequence runs in one
// transaction so concurrent completions cannot overwrite each other with a
// stale count.
func (s *CompletionService) CompleteLesson(userID, courseID, lessonID string) (float64, error) {
	var enrollment course.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFound("enrollment for user %s in course %s", userID, courseID)
		}
		return 0, err
	}

	if _, err := lessonInCourse(s.db, courseID, lessonID); err != nil {
		return 0, err
	}

	var progress float64
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// A duplicate completion hits the unique index and inserts
		// nothing; that is the expected idempotent path, not an error.
		completion := course.LessonCompletion{
			UserID:   userID,
			CourseID: courseID,
			LessonID: lessonID,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&completion).Error; err != nil {
			return err
		}

		computed, err := recomputeProgress(tx, userID, courseID)
		if err != nil {
			return err
		}
		progress = computed

		return applyProgress(tx, &enrollment, progress)
	})
	if err != nil {
		return 0, err
	}
	return progress, nil
}

// recomputeProgress derives progress from the ledger: lessons under the
// course's modules against completion rows for the (user, course) pair.
func recomputeProgress(tx *gorm.DB, userID, courseID string) (float64, error) {
	var totalLessons int64
	if err := tx.Model(&course.Lesson{}).
		Joins("JOIN modules ON modules.id = lessons.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&totalLessons).Error; err != nil {
		return 0, err
	}

	var completedLessons int64
	if err := tx.Model(&course.LessonCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&completedLessons).Error; err != nil {
		return 0, err
	}

	if totalLessons == 0 {
		return 0, nil
	}
	return 100 * float64(completedLessons) / float64(totalLessons), nil
}

// applyProgress persists the recomputed value and moves the status between
// active and completed as the figure crosses 100.
func applyProgress(tx *gorm.DB, enrollment *course.Enrollment, progress float64) error {
	enrollment.Progress = progress
	if progress >= 100 {
		enrollment.Status = course.EnrollmentCompleted
	} else {
		enrollment.Status = course.EnrollmentActive
	}
	return tx.Save(enrollment).Error
}
