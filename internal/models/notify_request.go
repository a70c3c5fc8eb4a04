package models

import "time"

// NotifyRequest records that someone wants to hear back when a full event
// frees up a spot.
type NotifyRequest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"eventId"`
	Email     string    `gorm:"not null" json:"email"`
	Notified  bool      `gorm:"not null;default:false" json:"notified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
