package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"blueline/reservehub/internal/auth"
	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/models/dtos"
	"blueline/reservehub/internal/services"
)

// ListUpcomingTrainingsHandler handles GET /api/v1/trainings
func ListUpcomingTrainingsHandler(trainingSvc *services.TrainingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		trainings, err := trainingSvc.ListUpcoming(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list trainings", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Trainings fetched", trainings)
	}
}

// CreateTrainingHandler handles POST /api/v1/trainings (admin)
func CreateTrainingHandler(trainingSvc *services.TrainingService) http.HandlerFunc {
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

		training, err := trainingSvc.Create(r.Context(), req, claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Training created", training, http.StatusCreated)
	}
}

// UpdateTrainingHandler handles PUT /api/v1/trainings/{id} (admin)
func UpdateTrainingHandler(trainingSvc *services.TrainingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateActivityReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		training, err := trainingSvc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Training updated", training)
	}
}

// DeleteTrainingHandler handles DELETE /api/v1/trainings/{id} (admin)
func DeleteTrainingHandler(trainingSvc *services.TrainingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := trainingSvc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Training deleted", nil)
	}
}

// TrainingParticipantsHandler handles GET /api/v1/trainings/{id}/participants
func TrainingParticipantsHandler(trainingSvc *services.TrainingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		participants, err := trainingSvc.Participants(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list participants", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Participants fetched", participants)
	}
}

// SignUpTrainingHandler handles POST /api/v1/trainings/{id}/signup (member)
func SignUpTrainingHandler(trainingSvc *services.TrainingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		assignment, err := trainingSvc.SignUp(r.Context(), chi.URLParam(r, "id"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Signed up", assignment, http.StatusCreated)
	}
}

// LeaveTrainingHandler handles DELETE /api/v1/trainings/{id}/signup (member)
func LeaveTrainingHandler(trainingSvc *services.TrainingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		removed, err := trainingSvc.Leave(r.Context(), chi.URLParam(r, "id"), claims.UserID())
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

// UpdateTrainingCompletionHandler handles PUT /api/v1/trainings/{id}/completions/{userID} (admin)
// Instructors can set completion both ways after the fact.
func UpdateTrainingCompletionHandler(trainingSvc *services.TrainingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateCompletionReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		assignment, err := trainingSvc.UpdateCompletion(
			r.Context(),
			chi.URLParam(r, "id"),
			chi.URLParam(r, "userID"),
			constants.CompletionStatus(req.Status),
			req.Notes,
		)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Completion updated", assignment)
	}
}
