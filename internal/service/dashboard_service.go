package service

import (
	"context"

	"github.com/tphappenings/campus-events/internal/models"
	"github.com/tphappenings/campus-events/internal/repository"
	"github.com/tphappenings/campus-events/internal/schedule"
)

const maxUpcomingEvents = 10

// Dashboard is the per-student aggregation shown on the home page.
type Dashboard struct {
	Registered     int            `json:"registered"`
	Upcoming       int            `json:"upcoming"`
	Attended       int            `json:"attended"`
	UpcomingEvents []models.Event `json:"upcomingEvents"`
	Recommended    []models.Event `json:"recommended"`
}

type DashboardService interface {
	Dashboard(ctx context.Context, userID uint) (*Dashboard, error)
}

type dashboardService struct {
	eventRepo repository.EventRepository
	regRepo   repository.RegistrationRepository
}

func NewDashboardService(eventRepo repository.EventRepository, regRepo repository.RegistrationRepository) DashboardService {
	return &dashboardService{eventRepo: eventRepo, regRepo: regRepo}
}

// Dashboard partitions all events into the user's registered-and-upcoming
// set and a recommendation pool of upcoming events they have not joined,
// and counts attended registrations.
func (s *dashboardService) Dashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	regs, err := s.regRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	registeredEventIDs := make(map[uint]bool, len(regs))
	attended := 0
	for _, reg := range regs {
		registeredEventIDs[reg.EventID] = true
		if reg.Attended {
			attended++
		}
	}

	events, err := s.eventRepo.FindAll(ctx, "", "")
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		Registered:     len(regs),
		Attended:       attended,
		UpcomingEvents: []models.Event{},
		Recommended:    []models.Event{},
	}

	for _, event := range events {
		if !schedule.Upcoming(event.Date) {
			continue
		}
		if registeredEventIDs[event.ID] {
			dash.Upcoming++
			if len(dash.UpcomingEvents) < maxUpcomingEvents {
				dash.UpcomingEvents = append(dash.UpcomingEvents, event)
			}
			continue
		}
		if len(dash.Recommended) < maxUpcomingEvents {
			dash.Recommended = append(dash.Recommended, event)
		}
	}

	return dash, nil
}
