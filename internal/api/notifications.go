package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"blueline/reservehub/internal/auth"
	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/models/dtos"
	"blueline/reservehub/internal/services"
)

// ListNotificationsHandler handles GET /api/v1/notifications
func ListNotificationsHandler(notifSvc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		notifications, err := notifSvc.ListForUser(r.Context(), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list notifications", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Notifications fetched", notifications)
	}
}

// UnreadCountHandler handles GET /api/v1/notifications/unread-count
func UnreadCountHandler(notifSvc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		count, err := notifSvc.UnreadCount(r.Context(), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to count unread", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Unread count fetched", dtos.UnreadCountResponse{Count: count})
	}
}

// MarkNotificationReadHandler handles POST /api/v1/notifications/{id}/read
// Marking an already-read notification again is a no-op.
func MarkNotificationReadHandler(notifSvc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := notifSvc.MarkRead(r.Context(), chi.URLParam(r, "id"), claims.UserID()); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Notification marked read", nil)
	}
}

// MarkAllNotificationsReadHandler handles POST /api/v1/notifications/read-all
func MarkAllNotificationsReadHandler(notifSvc *services.NotificationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := notifSvc.MarkAllRead(r.Context(), claims.UserID()); err != nil {
			common.RespondError(w, initTime, err, "Failed to mark all read", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "All notifications marked read", nil)
	}
}
