package models

import "time"

type UserType string

const (
	UserTypeStudent   UserType = "student"
	UserTypeOrganiser UserType = "organiser"
)

func (t UserType) Valid() bool {
	return t == UserTypeStudent || t == UserTypeOrganiser
}

type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	UserType     UserType `gorm:"type:varchar(20);not null" json:"userType"`

	// Student-only fields, empty for organisers.
	AdminNo     string `json:"adminNo,omitempty"`
	Course      string `json:"course,omitempty"`
	YearOfStudy int    `json:"yearOfStudy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
