package models

// Category groups courses in the catalog. Names are unique.
type Category struct {
	Base
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
}
