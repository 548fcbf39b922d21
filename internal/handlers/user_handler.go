package handlers

import (
	"net/http"

	"campuspool/internal/models"
	"campuspool/internal/request"
	"campuspool/internal/response"
	"campuspool/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	view, err := h.users.View(r.Context(), CurrentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "profile", view)
}

type updateProfilePayload struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=100"`
	Role          *string `json:"role" validate:"omitempty,oneof=rider driver"`
	VehicleModel  *string `json:"vehicle_model" validate:"omitempty,max=100"`
	VehicleNumber *string `json:"vehicle_number" validate:"omitempty,max=20"`
	VehicleColor  *string `json:"vehicle_color" validate:"omitempty,max=30"`
	Branch        *string `json:"branch" validate:"omitempty,max=10"`
	AcademicYear  *string `json:"academic_year" validate:"omitempty,max=2"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var payload updateProfilePayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	in := service.ProfileUpdateInput{
		Name:          payload.Name,
		VehicleModel:  payload.VehicleModel,
		VehicleNumber: payload.VehicleNumber,
		VehicleColor:  payload.VehicleColor,
		Branch:        payload.Branch,
		AcademicYear:  payload.AcademicYear,
	}
	if payload.Role != nil {
		role := models.UserRole(*payload.Role)
		in.Role = &role
	}

	user, err := h.users.UpdateProfile(r.Context(), CurrentUser(r), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	view, err := h.users.View(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "profile updated", view)
}

type verificationPayload struct {
	StudentIDImage string `json:"student_id_image" validate:"required"`
}

func (h *UserHandler) SubmitVerification(w http.ResponseWriter, r *http.Request) {
	var payload verificationPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	if err := h.users.SubmitVerification(r.Context(), CurrentUser(r), payload.StudentIDImage); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "verification submitted", nil)
}

func (h *UserHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.users.Stats(r.Context(), CurrentUser(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "stats", stats)
}

func (h *UserHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}

	view, err := h.users.PublicProfile(r.Context(), CurrentUser(r), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Public view hides contact and moderation details.
	view.Email = ""
	view.WarningCount = 0
	response.Success(w, "profile", view)
}
