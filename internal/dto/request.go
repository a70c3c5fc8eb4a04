package dto

type CreateEventRequest struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description" validate:"required"`
	Date            string `json:"date" validate:"required"`
	Time            string `json:"time" validate:"required"`
	Location        string `json:"location" validate:"required"`
	Category        string `json:"category" validate:"required"`
	MaxParticipants int    `json:"maxParticipants" validate:"required,min=1"`
	Organizer       string `json:"organizer" validate:"required"`
	OrganizerAvatar string `json:"organizerAvatar"`
	Image           string `json:"image"`
}

type UpdateEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Location        *string `json:"location"`
	Category        *string `json:"category"`
	MaxParticipants *int    `json:"maxParticipants" validate:"omitempty,min=1"`
	Image           *string `json:"image"`
}

type CreateRegistrationRequest struct {
	EventID          uint   `json:"eventId" validate:"required"`
	FullName         string `json:"fullName" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	AdminNo          string `json:"adminNo" validate:"required"`
	Course           string `json:"course" validate:"required"`
	YearOfStudy      int    `json:"yearOfStudy" validate:"required,min=1,max=3"`
	Reasons          string `json:"reasons"`
	RegistrationDate string `json:"registrationDate"`
	ReceiveUpdates   bool   `json:"receiveUpdates"`
	ConsentPhoto     bool   `json:"consentPhoto"`
}

// UpdateRegistrationRequest flips the attended flag. Marking attended
// requires the event's current attendance key; unmarking is organiser-only.
type UpdateRegistrationRequest struct {
	Attended      *bool  `json:"attended" validate:"required"`
	AttendanceKey string `json:"attendanceKey" validate:"omitempty,len=4,numeric"`
}

type SignupRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	UserType    string `json:"userType" validate:"required,oneof=student organiser"`
	AdminNo     string `json:"adminNo"`
	Course      string `json:"course"`
	YearOfStudy int    `json:"yearOfStudy" validate:"omitempty,min=1,max=3"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"required,oneof=student organiser"`
}

type UpdateUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=6"`
	AdminNo     *string `json:"adminNo"`
	Course      *string `json:"course"`
	YearOfStudy *int    `json:"yearOfStudy" validate:"omitempty,min=1,max=3"`
}

type NotifyMeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
