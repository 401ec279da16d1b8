package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	"blueline/reservehub/internal/metrics"
	"blueline/reservehub/internal/models/dtos"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

// EventService handles event CRUD and sign-ups. Capacity enforcement is an
// explicit policy switch: min/max participants are always stored, but
// sign-ups are only rejected at max when EnforceCapacity is on.
type EventService struct {
	repo     *repositories.EventRepository
	users    *repositories.UserRepositoryGORM
	notifier *NotificationService
	metrics  *metrics.MetricsRegistry

	EnforceCapacity bool
}

func NewEventService(repo *repositories.EventRepository, users *repositories.UserRepositoryGORM, notifier *NotificationService, m *metrics.MetricsRegistry, enforceCapacity bool) *EventService {
	return &EventService{
		repo:            repo,
		users:           users,
		notifier:        notifier,
		metrics:         m,
		EnforceCapacity: enforceCapacity,
	}
}

// Create adds an event and notifies the reserve-position audience.
func (s *EventService) Create(ctx context.Context, req dtos.CreateActivityReq, createdBy string) (*models.Event, error) {
	event := models.Event{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Type:            constants.EventType(req.Type),
		MinParticipants: req.MinParticipants,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       &createdBy,
	}

	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, err
	}

	s.fanOut(ctx, constants.NotifEventCreated,
		fmt.Sprintf("New event: %s on %s", event.Title, event.StartsAt.Format("Jan 2, 2006")),
		s.notifier.ReserveAudience)

	return &event, nil
}

// Update persists event edits
func (s *EventService) Update(ctx context.Context, id string, req dtos.CreateActivityReq) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Location = req.Location
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt
	event.Type = constants.EventType(req.Type)
	event.MinParticipants = req.MinParticipants
	event.MaxParticipants = req.MaxParticipants

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event; sign-up rows go with it.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListUpcoming returns events that have not started yet
func (s *EventService) ListUpcoming(ctx context.Context) ([]models.Event, error) {
	return s.repo.ListUpcoming(ctx, time.Now())
}

// Participants returns the sign-up rows with user details
func (s *EventService) Participants(ctx context.Context, eventID string) ([]models.EventAssignment, error) {
	return s.repo.Participants(ctx, eventID)
}

// SignUp registers a user for an event and notifies the admin audience.
// The (event, user) pair is unique; the pre-check gives a friendly message
// and the unique index settles any race.
func (s *EventService) SignUp(ctx context.Context, eventID, userID string) (*models.EventAssignment, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindAssignment(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New(constants.ErrMsgAlreadySignedUp)
	}

	if s.EnforceCapacity && event.MaxParticipants > 0 {
		count, err := s.repo.CountParticipants(ctx, eventID)
		if err != nil {
			return nil, err
		}
		if count >= int64(event.MaxParticipants) {
			return nil, errors.New(constants.ErrMsgActivityFull)
		}
	}

	assignment := models.EventAssignment{
		EventID: eventID,
		UserID:  userID,
	}
	if err := s.repo.CreateAssignment(ctx, &assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New(constants.ErrMsgAlreadySignedUp)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ActivitySignups.WithLabelValues("event").Inc()
	}

	s.notifyAdmins(ctx, constants.NotifEventSignup, userID, event.Title, "signed up for")

	return &assignment, nil
}

// Leave removes a user's sign-up. A missing sign-up is a normal negative
// result, not an error: the returned assignment is nil and nothing else
// happens. On success the admin audience is notified.
func (s *EventService) Leave(ctx context.Context, eventID, userID string) (*models.EventAssignment, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindAssignment(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	deleted, err := s.repo.DeleteAssignment(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, nil
	}

	s.notifyAdmins(ctx, constants.NotifEventLeave, userID, event.Title, "left")

	return existing, nil
}

func (s *EventService) notifyAdmins(ctx context.Context, typ constants.NotificationType, userID, eventTitle, verb string) {
	if s.notifier == nil {
		return
	}

	audience, err := s.notifier.AdminAudience(ctx)
	if err != nil {
		log.Printf("failed to resolve admin audience: %v", err)
		return
	}

	name := userID
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		name = user.Name
	}

	msg := fmt.Sprintf("%s %s %s", name, verb, eventTitle)
	if _, err := s.notifier.Notify(ctx, typ, msg, nil, audience); err != nil {
		log.Printf("event notification failed: %v", err)
	}
}

func (s *EventService) fanOut(ctx context.Context, typ constants.NotificationType, msg string, resolve func(context.Context) ([]string, error)) {
	if s.notifier == nil {
		return
	}

	audience, err := resolve(ctx)
	if err != nil {
		log.Printf("failed to resolve audience: %v", err)
		return
	}

	if _, err := s.notifier.Notify(ctx, typ, msg, nil, audience); err != nil {
		log.Printf("event notification failed: %v", err)
	}
}
