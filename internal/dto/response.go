package dto

import "github.com/tphappenings/campus-events/internal/models"

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// AttendanceKeyResponse carries a freshly generated key back to the
// organiser. This is the only place the key ever appears in a response.
type AttendanceKeyResponse struct {
	EventID       uint   `json:"eventId"`
	AttendanceKey string `json:"attendanceKey"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
