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

// ListPoliciesHandler handles GET /api/v1/policies
func ListPoliciesHandler(policySvc *services.PolicyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		policies, err := policySvc.List(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list policies", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Policies fetched", policies)
	}
}

// CreatePolicyHandler handles POST /api/v1/policies (admin)
// Publishing fans out a notification to all active users.
func CreatePolicyHandler(policySvc *services.PolicyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreatePolicyReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Title == "" || req.PolicyNumber == "" {
			common.RespondError(w, initTime, nil, "Policy number and title are required", http.StatusBadRequest)
			return
		}

		policy, err := policySvc.Create(r.Context(), req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Policy created", policy, http.StatusCreated)
	}
}

// UpdatePolicyHandler handles PUT /api/v1/policies/{id} (admin)
func UpdatePolicyHandler(policySvc *services.PolicyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreatePolicyReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		policy, err := policySvc.Update(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Policy updated", policy)
	}
}

// AcknowledgePolicyHandler handles POST /api/v1/policies/{id}/acknowledge (member)
func AcknowledgePolicyHandler(policySvc *services.PolicyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		completion, err := policySvc.Acknowledge(r.Context(), chi.URLParam(r, "id"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Policy acknowledged", completion, http.StatusCreated)
	}
}

// PolicyStatusHandler handles GET /api/v1/policies/{id}/status (member)
// Whether the caller has acknowledged this policy.
func PolicyStatusHandler(policySvc *services.PolicyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		completed, err := policySvc.IsCompleted(r.Context(), chi.URLParam(r, "id"), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to check completion", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Completion status fetched", map[string]bool{"completed": completed})
	}
}

// PolicyCompletionsHandler handles GET /api/v1/policies/{id}/completions (admin)
// One row per user, acknowledged or not.
func PolicyCompletionsHandler(policySvc *services.PolicyService, userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		users, err := userSvc.List(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list users", http.StatusInternalServerError)
			return
		}

		matrix, err := policySvc.CompletionMatrix(r.Context(), chi.URLParam(r, "id"), users)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to build completion matrix", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Completions fetched", matrix)
	}
}

// ResetPolicyCompletionsHandler handles DELETE /api/v1/policies/{id}/completions (admin)
// Bulk reset after a policy revision; everyone re-acknowledges.
func ResetPolicyCompletionsHandler(policySvc *services.PolicyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := policySvc.ResetCompletion(r.Context(), chi.URLParam(r, "id"), nil); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Completions reset", nil)
	}
}

// ResetPolicyCompletionForUserHandler handles DELETE /api/v1/policies/{id}/completions/{userID} (admin)
func ResetPolicyCompletionForUserHandler(policySvc *services.PolicyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		userID := chi.URLParam(r, "userID")

		if err := policySvc.ResetCompletion(r.Context(), chi.URLParam(r, "id"), &userID); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Completion reset", nil)
	}
}
