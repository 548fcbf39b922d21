package handlers

import (
	"net/http"

	"campuspool/internal/models"
	"campuspool/internal/request"
	"campuspool/internal/response"
	"campuspool/internal/service"

	"github.com/google/uuid"
)

type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "users", users)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "stats", stats)
}

func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.admin.AuditLogs(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "audit logs", logs)
}

type userStatusPayload struct {
	IsActive    *bool `json:"is_active"`
	IsSuspended *bool `json:"is_suspended"`
}

func (h *AdminHandler) SetUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}

	var payload userStatusPayload
	if request.HandleError(w, request.ReadJSON(w, r, &payload)) {
		return
	}

	user, err := h.admin.SetUserStatus(r.Context(), CurrentUser(r), userID, payload.IsActive, payload.IsSuspended)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "user status updated", user)
}

func (h *AdminHandler) PendingVerifications(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.PendingVerifications(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "pending verifications", users)
}

type verificationActionPayload struct {
	Approve bool    `json:"approve"`
	Reason  *string `json:"reason" validate:"omitempty,max=500"`
}

func (h *AdminHandler) HandleVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}

	var payload verificationActionPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	user, err := h.admin.HandleVerification(r.Context(), CurrentUser(r), userID, payload.Approve, payload.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "verification handled", user)
}

type reportPayload struct {
	ReportedUserID *string `json:"reported_user_id"`
	RideID         *string `json:"ride_id"`
	Category       string  `json:"category" validate:"required,oneof=safety behavior misuse other"`
	Description    string  `json:"description" validate:"required,min=10,max=1000"`
}

func (h *AdminHandler) FileReport(w http.ResponseWriter, r *http.Request) {
	var payload reportPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	in := service.FileReportInput{
		Category:    models.ReportCategory(payload.Category),
		Description: payload.Description,
	}
	if payload.ReportedUserID != nil {
		id, err := uuid.Parse(*payload.ReportedUserID)
		if err != nil {
			response.BadRequest(w, "invalid reported_user_id")
			return
		}
		in.ReportedUserID = &id
	}
	if payload.RideID != nil {
		id, err := uuid.Parse(*payload.RideID)
		if err != nil {
			response.BadRequest(w, "invalid ride_id")
			return
		}
		in.RideID = &id
	}

	report, err := h.admin.FileReport(r.Context(), CurrentUser(r), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, "report filed", report)
}

func (h *AdminHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.admin.ListReports(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "reports", reports)
}

type handleReportPayload struct {
	Action string  `json:"action" validate:"required,oneof=warn suspend disable dismiss"`
	Notes  *string `json:"notes" validate:"omitempty,max=500"`
}

func (h *AdminHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	reportID, ok := uuidParam(w, r, "reportID")
	if !ok {
		return
	}

	var payload handleReportPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	report, err := h.admin.HandleReport(r.Context(), CurrentUser(r), reportID, payload.Action, payload.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "report handled", report)
}

func (h *AdminHandler) ListSOS(w http.ResponseWriter, r *http.Request) {
	events, err := h.admin.ListSOS(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "sos events", events)
}

type handleSOSPayload struct {
	Action string  `json:"action" validate:"required,oneof=review resolve"`
	Notes  *string `json:"notes" validate:"omitempty,max=500"`
}

func (h *AdminHandler) HandleSOS(w http.ResponseWriter, r *http.Request) {
	eventID, ok := uuidParam(w, r, "eventID")
	if !ok {
		return
	}

	var payload handleSOSPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	event, err := h.admin.HandleSOS(r.Context(), CurrentUser(r), eventID, payload.Action, payload.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "sos handled", event)
}

type eventTagPayload struct {
	Name        string  `json:"name" validate:"required,min=2,max=50"`
	Description *string `json:"description" validate:"omitempty,max=200"`
}

func (h *AdminHandler) CreateEventTag(w http.ResponseWriter, r *http.Request) {
	var payload eventTagPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	tag, err := h.admin.CreateEventTag(r.Context(), CurrentUser(r), service.EventTagInput{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, "event tag created", tag)
}

func (h *AdminHandler) DeactivateEventTag(w http.ResponseWriter, r *http.Request) {
	tagID, ok := uuidParam(w, r, "tagID")
	if !ok {
		return
	}

	tag, err := h.admin.DeactivateEventTag(r.Context(), CurrentUser(r), tagID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "event tag deactivated", tag)
}

func (h *AdminHandler) ActiveEventTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.admin.ActiveEventTags(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "event tags", tags)
}
