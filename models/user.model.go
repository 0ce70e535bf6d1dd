package models

// User is the identity record the platform trusts from the auth boundary.
// Credential issuance lives outside this service; only identity fields are kept.
type User struct {
	Base
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Email     string `json:"email" gorm:"unique;not null"`
	Role      string `json:"role" gorm:"default:'student'"` // student, teacher, admin
}
