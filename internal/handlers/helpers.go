package handlers

import (
	"net/http"

	"campuspool/internal/response"
	"campuspool/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case service.NotFound(err):
		response.NotFound(w, err.Error())
	case service.Forbidden(err):
		response.Forbidden(w, err.Error())
	case service.InvalidArgument(err):
		response.BadRequest(w, err.Error())
	case service.Conflict(err):
		response.Conflict(w, err.Error())
	case service.Unauthenticated(err):
		response.Unauthorized(w, err.Error())
	default:
		response.InternalServerError(w, "internal server error")
	}
}

// uuidParam parses a chi URL parameter as a UUID, writing a 400 itself on
// failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		response.BadRequest(w, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
