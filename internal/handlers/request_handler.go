package handlers

import (
	"net/http"

	"campuspool/internal/request"
	"campuspool/internal/response"
	"campuspool/internal/service"
)

type RequestHandler struct {
	requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

type requestRidePayload struct {
	IsUrgent bool `json:"is_urgent"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	rideID, ok := uuidParam(w, r, "rideID")
	if !ok {
		return
	}

	// Body is optional; an empty one means a regular request.
	payload := requestRidePayload{}
	if r.ContentLength > 0 {
		if request.HandleError(w, request.ReadJSON(w, r, &payload)) {
			return
		}
	}

	req, err := h.requests.RequestRide(r.Context(), CurrentUser(r), rideID, payload.IsUrgent)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, "seat requested", req)
}

type respondPayload struct {
	Accept bool `json:"accept"`
}

func (h *RequestHandler) Respond(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	var payload respondPayload
	if request.HandleError(w, request.ReadJSON(w, r, &payload)) {
		return
	}

	req, err := h.requests.RespondToRequest(r.Context(), CurrentUser(r), requestID, payload.Accept)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	message := "request rejected"
	if payload.Accept {
		message = "request accepted"
	}
	response.Success(w, message, req)
}

type startRidePayload struct {
	PIN string `json:"pin" validate:"required,len=4"`
}

func (h *RequestHandler) Start(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	var payload startRidePayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	req, err := h.requests.StartRide(r.Context(), CurrentUser(r), requestID, payload.PIN)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "ride started", req)
}

func (h *RequestHandler) ReachedSafely(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	req, err := h.requests.MarkReachedSafely(r.Context(), CurrentUser(r), requestID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "reached safely", req)
}

func (h *RequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	req, err := h.requests.CancelRequest(r.Context(), CurrentUser(r), requestID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "request cancelled", req)
}

func (h *RequestHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	views, err := h.requests.MyRequests(r.Context(), CurrentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "requests", views)
}

func (h *RequestHandler) DriverRequests(w http.ResponseWriter, r *http.Request) {
	views, err := h.requests.DriverRequests(r.Context(), CurrentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "requests", views)
}

func (h *RequestHandler) RideRequests(w http.ResponseWriter, r *http.Request) {
	rideID, ok := uuidParam(w, r, "rideID")
	if !ok {
		return
	}

	views, err := h.requests.RideRequests(r.Context(), CurrentUser(r), rideID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "requests", views)
}

func (h *RequestHandler) LiveView(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	view, err := h.requests.LiveView(r.Context(), CurrentUser(r), requestID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "live ride", view)
}
