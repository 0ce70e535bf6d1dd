package course

import "lms/models"

// Module is a section within a course. Position orders siblings; positions
// are not forced unique, reads break ties by creation time.
type Module struct {
	models.Base
	CourseID    string `json:"course_id" gorm:"size:36;index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Position    int    `json:"position" gorm:"default:0"`
}
