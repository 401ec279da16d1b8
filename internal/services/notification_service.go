package services

import (
	"context"
	"fmt"
	"time"

	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	"blueline/reservehub/internal/metrics"
	"blueline/reservehub/internal/models/dtos"
	models "blueline/reservehub/internal/models/gorm"

	"gorm.io/gorm"
)

// NotificationService creates notifications with their recipient fan-out and
// serves per-user notification feeds.
type NotificationService struct {
	db      *gorm.DB
	users   *repositories.UserRepositoryGORM
	metrics *metrics.MetricsRegistry
}

func NewNotificationService(db *gorm.DB, users *repositories.UserRepositoryGORM, m *metrics.MetricsRegistry) *NotificationService {
	return &NotificationService{
		db:      db,
		users:   users,
		metrics: m,
	}
}

// Notify creates one notification row and one recipient row per user id, all
// in a single transaction so a failed batch insert never leaves an orphaned
// notification. An empty recipient list still creates the notification.
func (s *NotificationService) Notify(ctx context.Context, typ constants.NotificationType, message string, url *string, recipientUserIDs []string) (*models.Notification, error) {
	notification := models.Notification{
		Type:    typ,
		Message: message,
		URL:     url,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&notification).Error; err != nil {
			return err
		}

		if len(recipientUserIDs) == 0 {
			return nil
		}

		recipients := make([]models.NotificationRecipient, 0, len(recipientUserIDs))
		for _, userID := range recipientUserIDs {
			recipients = append(recipients, models.NotificationRecipient{
				NotificationID: notification.ID,
				UserID:         userID,
				IsRead:         false,
			})
		}
		return tx.Create(&recipients).Error
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if s.metrics != nil {
		s.metrics.NotificationsFannedOut.Add(float64(len(recipientUserIDs)))
	}

	return &notification, nil
}

// AdminAudience resolves the current set of active admins. Recomputed at
// call time, never cached, so membership reflects the roster at the moment
// of the triggering event.
func (s *NotificationService) AdminAudience(ctx context.Context) ([]string, error) {
	return s.users.IDsByRole(ctx, constants.RoleAdmin)
}

// ReserveAudience resolves the current set of active reserve-position users
func (s *NotificationService) ReserveAudience(ctx context.Context) ([]string, error) {
	return s.users.IDsByPosition(ctx, constants.PositionReserve)
}

// AllActiveAudience resolves every active user
func (s *NotificationService) AllActiveAudience(ctx context.Context) ([]string, error) {
	return s.users.ActiveIDs(ctx)
}

// MarkRead flags one notification as read for one user. Idempotent: a second
// call matches zero unread rows and is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	now := time.Now()

	err := s.db.WithContext(ctx).
		Model(&models.NotificationRecipient{}).
		Where("notification_id = ? AND user_id = ? AND is_read = ?", notificationID, userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error

	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead flags every unread notification for one user. Idempotent.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	now := time.Now()

	err := s.db.WithContext(ctx).
		Model(&models.NotificationRecipient{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error

	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// ListForUser returns the user's notifications newest-created-first with
// is_read joined in from the recipient row.
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]dtos.NotificationResponse, error) {
	var recipients []models.NotificationRecipient

	err := s.db.WithContext(ctx).
		Preload("Notification").
		Joins("JOIN notifications ON notifications.id = notification_recipients.notification_id").
		Where("notification_recipients.user_id = ?", userID).
		Order("notifications.created_at DESC").
		Find(&recipients).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	out := make([]dtos.NotificationResponse, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, dtos.NotificationResponse{
			ID:        r.NotificationID,
			Type:      r.Notification.Type.String(),
			Message:   r.Notification.Message,
			URL:       r.Notification.URL,
			IsRead:    r.IsRead,
			CreatedAt: r.Notification.CreatedAt,
		})
	}
	return out, nil
}

// UnreadCount returns the number of unread notifications for one user
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64

	err := s.db.WithContext(ctx).
		Model(&models.NotificationRecipient{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error

	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
