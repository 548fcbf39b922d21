package handlers

import (
	"net/http"

	"campuspool/internal/models"
	"campuspool/internal/request"
	"campuspool/internal/response"
	"campuspool/internal/service"
)

type AuthHandler struct {
	auth    *service.AuthService
	userSvc *service.UserService
}

func NewAuthHandler(auth *service.AuthService, userSvc *service.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, userSvc: userSvc}
}

type signupPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"required,oneof=rider driver"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload signupPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	result, err := h.auth.Signup(r.Context(), service.SignupInput{
		Email:    payload.Email,
		Password: payload.Password,
		Name:     payload.Name,
		Role:     models.UserRole(payload.Role),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeAuthResult(w, r, http.StatusCreated, "account created", result)
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	result, err := h.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.writeAuthResult(w, r, http.StatusOK, "logged in", result)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := CurrentUser(r)
	if err := h.auth.Logout(r.Context(), user.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "logged out", nil)
}

func (h *AuthHandler) writeAuthResult(w http.ResponseWriter, r *http.Request, status int, message string, result *service.AuthResult) {
	view, err := h.userSvc.View(r.Context(), result.User)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, status, response.Response{
		Message: message,
		Data: map[string]interface{}{
			"token": result.Token,
			"user":  view,
		},
	})
}
