package course

import (
	"time"

	"gorm.io/datatypes"

	"lms/models"
)

// Test scope types. A test attaches to exactly one content node; the
// (scope_type, scope_id) pair makes that exclusive by construction.
const (
	ScopeLesson = "lesson"
	ScopeModule = "module"
	ScopeCourse = "course"
)

// Test is a self-assessment attached to a lesson, module or course.
type Test struct {
	models.Base
	Title           string `json:"title" gorm:"not null"`
	ScopeType       string `json:"scope_type" gorm:"not null;index:idx_test_scope"`
	ScopeID         string `json:"scope_id" gorm:"size:36;not null;index:idx_test_scope"`
	QuestionsToShow int    `json:"questions_to_show" gorm:"default:0"`
	PassingScore    *int   `json:"passing_score"` // 0-100; nil is treated as 0 when grading

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:TestID"`
}

// Question belongs to a test.
type Question struct {
	models.Base
	TestID string `json:"test_id" gorm:"size:36;index;not null"`
	Text   string `json:"text" gorm:"type:text;not null"`
	Type   string `json:"type" gorm:"default:'single_choice'"`

	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
}

// Answer belongs to a question. IsCorrect must never be serialized to a
// learner before grading; learner-facing paths go through the sanitized
// views in the services package, which omit the field entirely.
type Answer struct {
	models.Base
	QuestionID string `json:"question_id" gorm:"size:36;index;not null"`
	Text       string `json:"text" gorm:"type:text;not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
}

// UserTestResult is one graded submission. History is retained: the pair
// (user_id, test_id) is indexed but not unique, and "current result" means
// the most recent by CompletedAt.
type UserTestResult struct {
	models.Base
	UserID      string         `json:"user_id" gorm:"size:36;not null;index:idx_user_test"`
	TestID      string         `json:"test_id" gorm:"size:36;not null;index:idx_user_test"`
	Score       int            `json:"score"` // 0-100
	Passed      bool           `json:"passed"`
	CompletedAt time.Time      `json:"completed_at"`
	Answers     datatypes.JSON `json:"answers"` // raw submitted answers, kept for review
}
