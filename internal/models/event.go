package models

import "time"

type EventCategory string

const (
	CategoryWorkshop    EventCategory = "Workshop"
	CategorySeminar     EventCategory = "Seminar"
	CategoryConference  EventCategory = "Conference"
	CategoryNetworking  EventCategory = "Networking"
	CategoryCompetition EventCategory = "Competition"
	CategoryOther       EventCategory = "Other"
)

func (c EventCategory) Valid() bool {
	switch c {
	case CategoryWorkshop, CategorySeminar, CategoryConference,
		CategoryNetworking, CategoryCompetition, CategoryOther:
		return true
	}
	return false
}

// EventStats is derived from the registrations of the event and is only
// written inside the same transaction that mutates those registrations.
type EventStats struct {
	Registered     int `gorm:"not null;default:0" json:"registered"`
	Attended       int `gorm:"not null;default:0" json:"attended"`
	AttendanceRate int `gorm:"not null;default:0" json:"attendanceRate"`
}

type Event struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Title           string        `gorm:"not null" json:"title"`
	Description     string        `gorm:"not null" json:"description"`
	Date            string        `gorm:"not null" json:"date"`
	Time            string        `gorm:"not null" json:"time"`
	Location        string        `gorm:"not null" json:"location"`
	Category        EventCategory `gorm:"type:varchar(20);not null" json:"category"`
	MaxParticipants int           `gorm:"not null" json:"maxParticipants"`
	SpotsRemaining  int           `gorm:"not null" json:"spotsRemaining"`
	Organizer       string        `gorm:"not null" json:"organizer"`
	OrganizerID     uint          `gorm:"not null;index" json:"organizerId"`
	OrganizerAvatar string        `gorm:"type:varchar(4);default:'OR'" json:"organizerAvatar"`
	Image           string        `json:"image"`
	AttendanceKey   *string       `gorm:"type:varchar(4)" json:"-"`
	Stats           EventStats    `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}
