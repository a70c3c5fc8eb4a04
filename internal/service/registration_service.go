package service

import (
	"context"
	"errors"
	"time"

	"github.com/tphappenings/campus-events/internal/metrics"
	"github.com/tphappenings/campus-events/internal/models"
	"github.com/tphappenings/campus-events/internal/repository"
	"github.com/tphappenings/campus-events/pkg/rabbitmq"
	"gorm.io/gorm"
)

// RegistrationDetails carries the signup-form fields for a new registration.
type RegistrationDetails struct {
	FullName         string
	Email            string
	AdminNo          string
	Course           string
	YearOfStudy      int
	Reasons          string
	RegistrationDate string
	ReceiveUpdates   bool
	ConsentPhoto     bool
}

type RegistrationService interface {
	Register(ctx context.Context, eventID, userID uint, details RegistrationDetails) (*models.Registration, error)
	Unregister(ctx context.Context, registrationID uint) (*models.Registration, error)
	MarkAttended(ctx context.Context, registrationID uint, submittedKey string) (*models.Registration, error)
	UnmarkAttended(ctx context.Context, registrationID uint) (*models.Registration, error)
	GetRegistration(ctx context.Context, id uint) (*models.Registration, error)
	ListRegistrations(ctx context.Context, eventID, userID uint) ([]models.Registration, error)
}

type registrationService struct {
	regRepo   repository.RegistrationRepository
	eventRepo repository.EventRepository
	publisher *rabbitmq.Publisher
}

func NewRegistrationService(regRepo repository.RegistrationRepository, eventRepo repository.EventRepository, publisher *rabbitmq.Publisher) RegistrationService {
	return &registrationService{
		regRepo:   regRepo,
		eventRepo: eventRepo,
		publisher: publisher,
	}
}

// Register creates a registration and decrements the event's remaining spots
// in one transaction. The event row is locked first, so two requests racing
// for the last spot serialize and the loser gets ErrCapacityExceeded.
func (s *registrationService) Register(ctx context.Context, eventID, userID uint, details RegistrationDetails) (*models.Registration, error) {
	var result *models.Registration

	err := s.regRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			return ErrEventNotFound
		}

		_, err = s.regRepo.FindActiveByUserAndEvent(ctx, tx, userID, eventID)
		if err == nil {
			return ErrDuplicateRegistration
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if event.SpotsRemaining <= 0 {
			metrics.CapacityRejectionsTotal.Inc()
			return ErrCapacityExceeded
		}

		regDate := details.RegistrationDate
		if regDate == "" {
			regDate = time.Now().Format("2006-01-02")
		}

		reg := &models.Registration{
			EventID:          eventID,
			UserID:           userID,
			FullName:         details.FullName,
			Email:            details.Email,
			AdminNo:          details.AdminNo,
			Course:           details.Course,
			YearOfStudy:      details.YearOfStudy,
			Reasons:          details.Reasons,
			RegistrationDate: regDate,
			Status:           models.RegistrationStatusRegistered,
			ReceiveUpdates:   details.ReceiveUpdates,
			ConsentPhoto:     details.ConsentPhoto,
			Attended:         false,
		}
		if err := s.regRepo.Create(ctx, tx, reg); err != nil {
			return err
		}

		event.SpotsRemaining--
		event.Stats.Registered++
		event.Stats.AttendanceRate = attendanceRate(event.Stats.Attended, event.Stats.Registered)
		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}

		result = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	if s.publisher != nil {
		_ = s.publisher.Publish("registration.created", result)
	}
	return result, nil
}

// Unregister deletes the registration and returns the spot to the event.
func (s *registrationService) Unregister(ctx context.Context, registrationID uint) (*models.Registration, error) {
	var (
		result     *models.Registration
		spotsAfter int
	)

	err := s.regRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reg, err := s.regRepo.FindByIDInTx(ctx, tx, registrationID)
		if err != nil {
			return ErrRegistrationNotFound
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, reg.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// orphan left behind by a partial delete; remove it outright
				result = reg
				return s.regRepo.Delete(ctx, tx, reg.ID)
			}
			return err
		}

		if err := s.regRepo.Delete(ctx, tx, reg.ID); err != nil {
			return err
		}

		if event.SpotsRemaining < event.MaxParticipants {
			event.SpotsRemaining++
		}
		if event.Stats.Registered > 0 {
			event.Stats.Registered--
		}
		if reg.Attended && event.Stats.Attended > 0 {
			event.Stats.Attended--
		}
		event.Stats.AttendanceRate = attendanceRate(event.Stats.Attended, event.Stats.Registered)
		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}

		result = reg
		spotsAfter = event.SpotsRemaining
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CancellationsTotal.Inc()
	if s.publisher != nil {
		_ = s.publisher.Publish("registration.cancelled", rabbitmq.SpotFreedMessage{
			EventID:        result.EventID,
			SpotsRemaining: spotsAfter,
		})
	}
	return result, nil
}

// MarkAttended flips the attended flag after the submitted key matches the
// event's current attendance key.
func (s *registrationService) MarkAttended(ctx context.Context, registrationID uint, submittedKey string) (*models.Registration, error) {
	var result *models.Registration

	err := s.regRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reg, err := s.regRepo.FindByIDInTx(ctx, tx, registrationID)
		if err != nil {
			return ErrRegistrationNotFound
		}
		if reg.Attended {
			return ErrAlreadyAttended
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, reg.EventID)
		if err != nil {
			return ErrEventNotFound
		}

		if event.AttendanceKey == nil {
			return ErrNoAttendanceKey
		}
		if !VerifyAttendanceKey(event.AttendanceKey, submittedKey) {
			metrics.KeyVerificationFailuresTotal.Inc()
			return ErrInvalidAttendanceKey
		}

		now := time.Now()
		reg.Attended = true
		reg.AttendanceTime = &now
		if err := s.regRepo.Save(ctx, tx, reg); err != nil {
			return err
		}

		event.Stats.Attended++
		event.Stats.AttendanceRate = attendanceRate(event.Stats.Attended, event.Stats.Registered)
		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}

		result = reg
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.AttendanceMarkedTotal.Inc()
	if s.publisher != nil {
		_ = s.publisher.Publish("attendance.marked", result)
	}
	return result, nil
}

// UnmarkAttended is the organiser-only corrective inverse of MarkAttended.
func (s *registrationService) UnmarkAttended(ctx context.Context, registrationID uint) (*models.Registration, error) {
	var result *models.Registration

	err := s.regRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reg, err := s.regRepo.FindByIDInTx(ctx, tx, registrationID)
		if err != nil {
			return ErrRegistrationNotFound
		}
		if !reg.Attended {
			return ErrNotAttended
		}

		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, reg.EventID)
		if err != nil {
			return ErrEventNotFound
		}

		reg.Attended = false
		reg.AttendanceTime = nil
		if err := s.regRepo.Save(ctx, tx, reg); err != nil {
			return err
		}

		if event.Stats.Attended > 0 {
			event.Stats.Attended--
		}
		event.Stats.AttendanceRate = attendanceRate(event.Stats.Attended, event.Stats.Registered)
		if err := s.eventRepo.Save(ctx, tx, event); err != nil {
			return err
		}

		result = reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *registrationService) GetRegistration(ctx context.Context, id uint) (*models.Registration, error) {
	reg, err := s.regRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) ListRegistrations(ctx context.Context, eventID, userID uint) ([]models.Registration, error) {
	return s.regRepo.Find(ctx, eventID, userID)
}
