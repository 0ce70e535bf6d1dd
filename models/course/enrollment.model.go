package course

import "lms/models"

// Enrollment statuses.
const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
)

// Enrollment tracks a user's membership in a course. Progress is a cached
// projection of the completion ledger, recomputed on every completion —
// never incremented in place.
type Enrollment struct {
	models.Base
	UserID       string  `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_user_course"`
	CourseID     string  `json:"course_id" gorm:"size:36;not null;uniqueIndex:idx_user_course"`
	Status       string  `json:"status" gorm:"default:'active'"`
	Progress     float64 `json:"progress" gorm:"default:0"` // 0-100
	LastLessonID *string `json:"last_lesson_id" gorm:"size:36"`
}

// LessonCompletion is an immutable completion event. The composite unique
// index collapses duplicate completion attempts to a single row.
type LessonCompletion struct {
	models.Base
	UserID   string `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_user_course_lesson"`
	CourseID string `json:"course_id" gorm:"size:36;not null;uniqueIndex:idx_user_course_lesson"`
	LessonID string `json:"lesson_id" gorm:"size:36;not null;uniqueIndex:idx_user_course_lesson"`
}
