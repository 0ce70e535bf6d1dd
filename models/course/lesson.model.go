package course

import "lms/models"

// Lesson is the leaf of the content hierarchy. Position semantics mirror
// Module.Position, scoped to the owning module.
type Lesson struct {
	models.Base
	ModuleID    string `json:"module_id" gorm:"size:36;index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Content     string `json:"content" gorm:"type:text"`
	MaterialURL string `json:"material_url"` // set by the blob-storage collaborator
	Position    int    `json:"position" gorm:"default:0"`
}

// Practice is an exercise attached to a lesson.
type Practice struct {
	models.Base
	LessonID    string `json:"lesson_id" gorm:"size:36;index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
}
