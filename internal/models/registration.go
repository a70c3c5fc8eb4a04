package models

import "time"

const (
	RegistrationStatusRegistered = "registered"
)

type Registration struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	EventID          uint       `gorm:"not null;index" json:"eventId"`
	UserID           uint       `gorm:"not null;index" json:"userId"`
	FullName         string     `gorm:"not null" json:"fullName"`
	Email            string     `gorm:"not null" json:"email"`
	AdminNo          string     `gorm:"not null" json:"adminNo"`
	Course           string     `gorm:"not null" json:"course"`
	YearOfStudy      int        `gorm:"not null" json:"yearOfStudy"`
	Reasons          string     `json:"reasons"`
	RegistrationDate string     `gorm:"not null" json:"registrationDate"`
	Status           string     `gorm:"type:varchar(20);not null;default:'registered'" json:"status"`
	ReceiveUpdates   bool       `gorm:"default:false" json:"receiveUpdates"`
	ConsentPhoto     bool       `gorm:"default:false" json:"consentPhoto"`
	Attended         bool       `gorm:"not null;default:false" json:"attended"`
	AttendanceTime   *time.Time `json:"attendanceTime"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
