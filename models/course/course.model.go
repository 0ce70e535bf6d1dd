package course

import "lms/models"

// Course is the root of the content hierarchy. Modules hang off it by
// position; enrollments reference it by ID.
type Course struct {
	models.Base
	Title           string  `json:"title" gorm:"not null"`
	Description     string  `json:"description" gorm:"type:text"`
	DifficultyLevel string  `json:"difficulty_level"` // beginner, intermediate, advanced
	CategoryID      *string `json:"category_id" gorm:"size:36;index"`

	Category *models.Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
