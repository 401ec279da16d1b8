package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"blueline/reservehub/internal/auth"
	"blueline/reservehub/internal/common"
	"blueline/reservehub/internal/constants"
	"blueline/reservehub/internal/db/repositories"
	models "blueline/reservehub/internal/models/gorm"
	"blueline/reservehub/internal/models/dtos"
	"blueline/reservehub/internal/services"
)

func toAssignmentResponse(a *models.AssignedEquipment) dtos.AssignmentResponse {
	resp := dtos.AssignmentResponse{
		ID:                 a.ID,
		EquipmentID:        a.EquipmentID,
		UserID:             a.UserID,
		Condition:          string(a.Condition),
		CheckedOutAt:       a.CheckedOutAt,
		CheckedInAt:        a.CheckedInAt,
		ExpectedReturnDate: a.ExpectedReturnDate,
		Notes:              a.Notes,
	}
	if a.Equipment.ID != "" {
		resp.EquipmentName = a.Equipment.Name
		resp.SerialNumber = a.Equipment.SerialNumber
	}
	return resp
}

// ListEquipmentHandler handles GET /api/v1/equipment (admin)
// ?assignable=true narrows to items that can be checked out right now.
func ListEquipmentHandler(equipRepo *repositories.EquipmentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		assignableOnly := r.URL.Query().Get("assignable") == "true"

		items, err := equipRepo.List(r.Context(), assignableOnly)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list equipment", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Equipment fetched", items)
	}
}

// CreateEquipmentHandler handles POST /api/v1/equipment (admin)
func CreateEquipmentHandler(equipRepo *repositories.EquipmentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateEquipmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Name == "" || req.SerialNumber == "" {
			common.RespondError(w, initTime, nil, "Name and serial number are required", http.StatusBadRequest)
			return
		}

		item := &models.Equipment{
			Name:         req.Name,
			SerialNumber: req.SerialNumber,
		}

		if err := equipRepo.Create(r.Context(), item); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Equipment created", item, http.StatusCreated)
	}
}

// UpdateEquipmentHandler handles PUT /api/v1/equipment/{id} (admin)
func UpdateEquipmentHandler(equipRepo *repositories.EquipmentRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateEquipmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		item, err := equipRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Equipment not found", http.StatusNotFound)
			return
		}

		if req.Name != "" {
			item.Name = req.Name
		}
		if req.SerialNumber != "" {
			item.SerialNumber = req.SerialNumber
		}

		if err := equipRepo.Update(r.Context(), item); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Equipment updated", item)
	}
}

// AssignEquipmentHandler handles POST /api/v1/equipment/{id}/assign (admin)
func AssignEquipmentHandler(equipSvc *services.EquipmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.AssignEquipmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.UserID == "" {
			common.RespondError(w, initTime, nil, "User ID is required", http.StatusBadRequest)
			return
		}

		assignment, err := equipSvc.Assign(
			r.Context(),
			chi.URLParam(r, "id"),
			req.UserID,
			constants.EquipmentCondition(req.Condition),
			req.Notes,
			req.CheckedOutAt,
			req.ExpectedReturnDate,
		)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Equipment assigned", toAssignmentResponse(assignment), http.StatusCreated)
	}
}

// ReturnAssignmentHandler handles POST /api/v1/assignments/{id}/return (admin)
func ReturnAssignmentHandler(equipSvc *services.EquipmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.ReturnEquipmentReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		err := equipSvc.Return(r.Context(), chi.URLParam(r, "id"), constants.EquipmentCondition(req.Condition), req.Notes)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Equipment returned", nil)
	}
}

// UpdateAssignmentNotesHandler handles PATCH /api/v1/assignments/{id}/notes (admin)
func UpdateAssignmentNotesHandler(equipSvc *services.EquipmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateNotesReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, err, "Invalid request body", http.StatusBadRequest)
			return
		}

		assignment, err := equipSvc.UpdateNotes(r.Context(), chi.URLParam(r, "id"), req.Notes)
		if err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Notes updated", toAssignmentResponse(assignment))
	}
}

// MyEquipmentHandler handles GET /api/v1/equipment/mine (member)
// Active checkouts first, then returned history, newest checkout first.
func MyEquipmentHandler(equipSvc *services.EquipmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		claims := auth.GetUserClaims(r.Context())
		if claims == nil {
			common.RespondError(w, initTime, nil, "Unauthorized: missing claims", http.StatusUnauthorized)
			return
		}

		assignments, err := equipSvc.ListForUser(r.Context(), claims.UserID())
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list equipment", http.StatusInternalServerError)
			return
		}

		resp := make([]dtos.AssignmentResponse, 0, len(assignments))
		for i := range assignments {
			resp = append(resp, toAssignmentResponse(&assignments[i]))
		}

		common.RespondSuccess(w, initTime, "Equipment fetched", resp)
	}
}

// UserEquipmentHandler handles GET /api/v1/users/{id}/equipment (admin)
func UserEquipmentHandler(equipSvc *services.EquipmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		assignments, err := equipSvc.ListForUser(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to list equipment", http.StatusInternalServerError)
			return
		}

		resp := make([]dtos.AssignmentResponse, 0, len(assignments))
		for i := range assignments {
			resp = append(resp, toAssignmentResponse(&assignments[i]))
		}

		common.RespondSuccess(w, initTime, "Equipment fetched", resp)
	}
}

// MarkObsoleteHandler handles POST /api/v1/equipment/{id}/obsolete (admin)
func MarkObsoleteHandler(equipSvc *services.EquipmentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := equipSvc.MarkObsolete(r.Context(), chi.URLParam(r, "id")); err != nil {
			common.RespondError(w, initTime, err, err.Error(), http.StatusBadRequest)
			return
		}

		common.RespondSuccess(w, initTime, "Equipment marked obsolete", nil)
	}
}
