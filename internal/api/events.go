package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"blueline/reservehub/internal/auth"
	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/models/dtos"
	"blueline/reservehub/internal/services"
)

// ListUpcomingEventsHandler handles GET /api/v1/events
func ListUpcomingEventsHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		events, err := eventSvc.ListUpcoming(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list events", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Events fetched", events)
	}
}

// CreateEventHandler handles POST /api/v1/events (admin)
func CreateEventHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.CreateActivityReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Title == "" {
			common.RespondError(w, initTime, nil, "Title is required", http.StatusBadRequest)
			return
		}

		event, err := eventSvc.Create(r.Context(), req, claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Event created", event, http.StatusCreated)
	}
}

// UpdateEventHandler handles PUT /api/v1/events/{id} (admin)
func UpdateEventHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateActivityReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		event, err := eventSvc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Event updated", event)
	}
}

// DeleteEventHandler handles DELETE /api/v1/events/{id} (admin)
// Sign-ups go with the event.
func DeleteEventHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := eventSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Event deleted", nil)
	}
}

// EventParticipantsHandler handles GET /api/v1/events/{id}/participants
func EventParticipantsHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		participants, err := eventSvc.Participants(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list participants", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Participants fetched", participants)
	}
}

// SignUpEventHandler handles POST /api/v1/events/{id}/signup (member)
func SignUpEventHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		assignment, err := eventSvc.SignUp(r.Context(), chi.URLParam(r, "id"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Signed up", assignment, http.StatusCreated)
	}
}

// LeaveEventHandler handles DELETE /api/v1/events/{id}/signup (member)
// Leaving an event you never joined is a no-op.
func LeaveEventHandler(eventSvc *services.EventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		removed, err := eventSvc.Leave(r.Context(), chi.URLParam(r, "id"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		if removed == nil {
			common.RespondSuccess(w, initTime, "No sign-up to remove", nil)
			return
		}

		common.RespondSuccess(w, initTime, "Sign-up removed", nil)
	}
}
