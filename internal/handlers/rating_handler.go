package handlers

import (
	"net/http"

	"campuspool/internal/request"
	"campuspool/internal/response"
	"campuspool/internal/service"
)

type RatingHandler struct {
	ratings *service.RatingService
}

func NewRatingHandler(ratings *service.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

type ratingPayload struct {
	Rating   int     `json:"rating" validate:"required,gte=1,lte=5"`
	Feedback *string `json:"feedback" validate:"omitempty,max=500"`
}

func (h *RatingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	var payload ratingPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	rating, err := h.ratings.Submit(r.Context(), CurrentUser(r), requestID, payload.Rating, payload.Feedback)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, "rating submitted", rating)
}

func (h *RatingHandler) CanRate(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	canRate, err := h.ratings.CanRate(r.Context(), CurrentUser(r), requestID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "can rate", map[string]bool{"can_rate": canRate})
}
