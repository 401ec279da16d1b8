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

// TrainingService mirrors EventService for training sessions, plus
// completion tracking: attendance rows survive the session and carry a
// completion status set afterwards by an admin.
type TrainingService struct {
	repo     *repositories.TrainingRepository
	users    *repositories.UserRepositoryGORM
	notifier *NotificationService
	metrics  *metrics.MetricsRegistry

	EnforceCapacity bool
}

func NewTrainingService(repo *repositories.TrainingRepository, users *repositories.UserRepositoryGORM, notifier *NotificationService, m *metrics.MetricsRegistry, enforceCapacity bool) *TrainingService {
	return &TrainingService{
		repo:            repo,
		users:           users,
		notifier:        notifier,
		metrics:         m,
		EnforceCapacity: enforceCapacity,
	}
}

// Create adds a training and notifies the reserve-position audience
func (s *TrainingService) Create(ctx context.Context, req dtos.CreateActivityReq, createdBy string) (*models.Training, error) {
	training := models.Training{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Type:            constants.TrainingType(req.Type),
		MinParticipants: req.MinParticipants,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       &createdBy,
	}

	if err := s.repo.Create(ctx, &training); err != nil {
		return nil, err
	}

	s.fanOut(ctx, constants.NotifTrainingCreated,
		fmt.Sprintf("New training: %s on %s", training.Title, training.StartsAt.Format("Jan 2, 2006")))

	return &training, nil
}

// Update persists training edits
func (s *TrainingService) Update(ctx context.Context, id string, req dtos.CreateActivityReq) (*models.Training, error) {
	training, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	training.Title = req.Title
	training.Description = req.Description
	training.Location = req.Location
	training.StartsAt = req.StartsAt
	training.EndsAt = req.EndsAt
	training.Type = constants.TrainingType(req.Type)
	training.MinParticipants = req.MinParticipants
	training.MaxParticipants = req.MaxParticipants

	if err := s.repo.Update(ctx, training); err != nil {
		return nil, err
	}
	return training, nil
}

// Delete removes a training; attendance rows go with it.
func (s *TrainingService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListUpcoming returns trainings that have not started yet
func (s *TrainingService) ListUpcoming(ctx context.Context) ([]models.Training, error) {
	return s.repo.ListUpcoming(ctx, time.Now())
}

// Participants returns the attendance rows with user details
func (s *TrainingService) Participants(ctx context.Context, trainingID string) ([]models.TrainingAssignment, error) {
	return s.repo.Participants(ctx, trainingID)
}

// SignUp registers a user for a training and notifies the admin audience
func (s *TrainingService) SignUp(ctx context.Context, trainingID, userID string) (*models.TrainingAssignment, error) {
	training, err := s.repo.GetByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindAssignment(ctx, trainingID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New(constants.ErrMsgAlreadySignedUp)
	}

	if s.EnforceCapacity && training.MaxParticipants > 0 {
		count, err := s.repo.CountParticipants(ctx, trainingID)
		if err != nil {
			return nil, err
		}
		if count >= int64(training.MaxParticipants) {
			return nil, errors.New(constants.ErrMsgActivityFull)
		}
	}

	assignment := models.TrainingAssignment{
		TrainingID: trainingID,
		UserID:     userID,
	}
	if err := s.repo.CreateAssignment(ctx, &assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New(constants.ErrMsgAlreadySignedUp)
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ActivitySignups.WithLabelValues("training").Inc()
	}

	s.notifyAdmins(ctx, constants.NotifTrainingSignup, userID, training.Title, "signed up for")

	return &assignment, nil
}

// Leave removes a user's sign-up before the session. Missing sign-up is a
// normal negative result.
func (s *TrainingService) Leave(ctx context.Context, trainingID, userID string) (*models.TrainingAssignment, error) {
	training, err := s.repo.GetByID(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindAssignment(ctx, trainingID, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	deleted, err := s.repo.DeleteAssignment(ctx, trainingID, userID)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, nil
	}

	s.notifyAdmins(ctx, constants.NotifTrainingLeave, userID, training.Title, "left")

	return existing, nil
}

// UpdateCompletion records attendance outcome on the row. Any status may
// transition to any other; there is no terminal state.
func (s *TrainingService) UpdateCompletion(ctx context.Context, trainingID, userID string, status constants.CompletionStatus, notes string) (*models.TrainingAssignment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid completion status: %q", status)
	}

	return s.repo.UpdateCompletion(ctx, trainingID, userID, status, notes)
}

func (s *TrainingService) notifyAdmins(ctx context.Context, typ constants.NotificationType, userID, title, verb string) {
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

	msg := fmt.Sprintf("%s %s %s", name, verb, title)
	if _, err := s.notifier.Notify(ctx, typ, msg, nil, audience); err != nil {
		log.Printf("training notification failed: %v", err)
	}
}

func (s *TrainingService) fanOut(ctx context.Context, typ constants.NotificationType, msg string) {
	if s.notifier == nil {
		return
	}

	audience, err := s.notifier.ReserveAudience(ctx)
	if err != nil {
		log.Printf("failed to resolve audience: %v", err)
		return
	}

	if _, err := s.notifier.Notify(ctx, typ, msg, nil, audience); err != nil {
		log.Printf("training notification failed: %v", err)
	}
}
