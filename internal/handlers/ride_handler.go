package handlers

import (
	"net/http"

	"campuspool/internal/request"
	"campuspool/internal/response"
	"campuspool/internal/service"

	"github.com/google/uuid"
)

type RideHandler struct {
	rides *service.RideService
}

func NewRideHandler(rides *service.RideService) *RideHandler {
	return &RideHandler{rides: rides}
}

type createRidePayload struct {
	Source            string   `json:"source" validate:"required,min=2,max=255"`
	Destination       string   `json:"destination" validate:"required,min=2,max=255"`
	SourceLat         *float64 `json:"source_lat"`
	SourceLng         *float64 `json:"source_lng"`
	DestinationLat    *float64 `json:"destination_lat"`
	DestinationLng    *float64 `json:"destination_lng"`
	Date              string   `json:"date" validate:"required"`
	Time              string   `json:"time" validate:"required"`
	TotalSeats        int      `json:"total_seats" validate:"required,gte=1,lte=8"`
	EstimatedCost     float64  `json:"estimated_cost" validate:"gte=0"`
	PickupPoint       *string  `json:"pickup_point"`
	IsRecurring       bool     `json:"is_recurring"`
	RecurrencePattern *string  `json:"recurrence_pattern"`
	RecurrenceDays    int      `json:"recurrence_days" validate:"gte=0,lte=60"`
	EventTagID        *string  `json:"event_tag_id"`
}

func (h *RideHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createRidePayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	in := service.CreateRideInput{
		Source:            payload.Source,
		Destination:       payload.Destination,
		SourceLat:         payload.SourceLat,
		SourceLng:         payload.SourceLng,
		DestinationLat:    payload.DestinationLat,
		DestinationLng:    payload.DestinationLng,
		Date:              payload.Date,
		Time:              payload.Time,
		TotalSeats:        payload.TotalSeats,
		EstimatedCost:     payload.EstimatedCost,
		PickupPoint:       payload.PickupPoint,
		IsRecurring:       payload.IsRecurring,
		RecurrencePattern: payload.RecurrencePattern,
		RecurrenceDays:    payload.RecurrenceDays,
	}
	if payload.EventTagID != nil {
		tagID, err := uuid.Parse(*payload.EventTagID)
		if err != nil {
			response.BadRequest(w, "invalid event_tag_id")
			return
		}
		in.EventTagID = &tagID
	}

	ride, instances, err := h.rides.CreateRide(r.Context(), CurrentUser(r), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, "ride posted", map[string]interface{}{
		"ride":      ride,
		"instances": instances,
	})
}

func (h *RideHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := service.SearchInput{
		Source:      q.Get("source"),
		Destination: q.Get("destination"),
		Date:        q.Get("date"),
		PickupPoint: q.Get("pickup_point"),
	}
	if raw := q.Get("event_tag_id"); raw != "" {
		if tagID, err := uuid.Parse(raw); err == nil {
			in.EventTagID = &tagID
		}
	}

	rides, err := h.rides.Search(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "rides", rides)
}

func (h *RideHandler) Get(w http.ResponseWriter, r *http.Request) {
	rideID, ok := uuidParam(w, r, "rideID")
	if !ok {
		return
	}

	ride, err := h.rides.GetRide(r.Context(), rideID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "ride", ride)
}

type updateRidePayload struct {
	Date          *string  `json:"date"`
	Time          *string  `json:"time"`
	TotalSeats    *int     `json:"total_seats" validate:"omitempty,gte=1,lte=8"`
	EstimatedCost *float64 `json:"estimated_cost" validate:"omitempty,gte=0"`
	PickupPoint   *string  `json:"pickup_point"`
}

func (h *RideHandler) Update(w http.ResponseWriter, r *http.Request) {
	rideID, ok := uuidParam(w, r, "rideID")
	if !ok {
		return
	}

	var payload updateRidePayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	ride, err := h.rides.UpdateRide(r.Context(), CurrentUser(r), rideID, service.UpdateRideInput{
		Date:          payload.Date,
		Time:          payload.Time,
		TotalSeats:    payload.TotalSeats,
		EstimatedCost: payload.EstimatedCost,
		PickupPoint:   payload.PickupPoint,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "ride updated", ride)
}

func (h *RideHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	rideID, ok := uuidParam(w, r, "rideID")
	if !ok {
		return
	}

	if err := h.rides.CancelRide(r.Context(), CurrentUser(r), rideID); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "ride cancelled", nil)
}

func (h *RideHandler) MyRides(w http.ResponseWriter, r *http.Request) {
	rides, err := h.rides.MyRides(r.Context(), CurrentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "rides", rides)
}
