package handlers

import (
	"net/http"

	"campuspool/internal/catalog"
	"campuspool/internal/response"
)

// CatalogHandler serves the fixed campus reference data.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) PickupPoints(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "pickup points", catalog.PickupPoints)
}

func (h *CatalogHandler) RecurrencePatterns(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "recurrence patterns", catalog.RecurrencePatterns)
}

func (h *CatalogHandler) Branches(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "branches", catalog.Branches)
}

func (h *CatalogHandler) AcademicYears(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "academic years", catalog.AcademicYears)
}

func (h *CatalogHandler) Badges(w http.ResponseWriter, r *http.Request) {
	response.Success(w, "badges", catalog.BadgeDefinitions)
}
