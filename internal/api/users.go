package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"blueline/reservehub/internal/auth"
	"blueline/reservehub/internal/common"
	models "blueline/reservehub/internal/models/gorm"
	"blueline/reservehub/internal/models/dtos"
	"blueline/reservehub/internal/services"
)

func toUserResponse(u *models.User) dtos.UserResponse {
	return dtos.UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role.String(),
		Position:    u.Position.String(),
		Status:      string(u.Status),
		Phone:       u.Phone,
		BadgeNumber: u.BadgeNumber,
	}
}

// GetMeHandler handles GET /api/v1/users/me
func GetMeHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		user, err := userSvc.Get(r.Context(), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to load profile", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Profile fetched", toUserResponse(user))
	}
}

// UpdateMeHandler handles PUT /api/v1/users/me
func UpdateMeHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		var req dtos.UpdateProfileReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := userSvc.UpdateProfile(r.Context(), claims.UserID(), req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Profile updated", toUserResponse(user))
	}
}

// UploadResumeHandler handles POST /api/v1/users/me/resume (multipart form, field "resume")
func UploadResumeHandler(userSvc *services.UserService, storage *common.StorageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		if err := r.ParseMultipartForm(10 << 20); err != nil {
			common.RespondError(w, initTime, err, "Invalid multipart form", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("resume")
		if err != nil {
			common.RespondError(w, initTime, err, "Resume file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		path, err := storage.Upload("resumes", header.Filename, file)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to store resume", http.StatusInternalServerError)
			return
		}

		if err := userSvc.SetResumePath(r.Context(), claims.UserID(), path); err != nil {
			common.RespondError(w, initTime, err, "Failed to record resume", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Resume uploaded", map[string]string{"path": path})
	}
}

// ResumeURLHandler handles GET /api/v1/users/{id}/resume (admin)
// Returns a short-lived signed download URL for the member's resume.
func ResumeURLHandler(userSvc *services.UserService, storage *common.StorageService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		userID := chi.URLParam(r, "id")

		user, err := userSvc.Get(r.Context(), userID)
		if err != nil {
			common.RespondError(w, initTime, err, "User not found", http.StatusNotFound)
			return
		}

		if user.ResumePath == nil || *user.ResumePath == "" {
			common.RespondError(w, initTime, nil, "No resume on file", http.StatusNotFound)
			return
		}

		url, err := storage.SignedURL(*user.ResumePath)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to sign URL", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Resume URL generated", map[string]string{"url": url})
	}
}

// ListUsersHandler handles GET /api/v1/users (admin)
func ListUsersHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		users, err := userSvc.List(r.Context())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list users", http.StatusInternalServerError)
			return
		}

		resp := make([]dtos.UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, toUserResponse(&users[i]))
		}

		common.RespondSuccess(w, initTime, "Users fetched", resp)
	}
}

// GetUserHandler handles GET /api/v1/users/{id} (admin)
func GetUserHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := userSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, err, "User not found", http.StatusNotFound)
			return
		}

		common.RespondSuccess(w, initTime, "User fetched", toUserResponse(user))
	}
}

// AdminUpdateUserHandler handles PATCH /api/v1/users/{id} (admin)
// Role, position, status and badge assignment.
func AdminUpdateUserHandler(userSvc *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AdminUpdateUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := userSvc.AdminUpdate(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "User updated", toUserResponse(user))
	}
}
