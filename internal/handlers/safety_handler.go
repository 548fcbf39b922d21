package handlers

import (
	"net/http"

	"campuspool/internal/request"
	"campuspool/internal/response"
	"campuspool/internal/service"
)

type SafetyHandler struct {
	safety *service.SafetyService
}

func NewSafetyHandler(safety *service.SafetyService) *SafetyHandler {
	return &SafetyHandler{safety: safety}
}

type sosPayload struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	LocationText *string  `json:"location_text" validate:"omitempty,max=255"`
	Message      *string  `json:"message" validate:"omitempty,max=1000"`
}

func (h *SafetyHandler) TriggerSOS(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	payload := sosPayload{}
	if r.ContentLength > 0 {
		if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
			return
		}
	}

	event, err := h.safety.TriggerSOS(r.Context(), CurrentUser(r), requestID, service.SOSInput{
		Latitude:     payload.Latitude,
		Longitude:    payload.Longitude,
		LocationText: payload.LocationText,
		Message:      payload.Message,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, "sos triggered", event)
}
