package handlers

import (
	"net/http"

	"campuspool/internal/request"
	"campuspool/internal/response"
	"campuspool/internal/service"
)

type ChatHandler struct {
	chats *service.ChatService
}

func NewChatHandler(chats *service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

type chatPayload struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	var payload chatPayload
	if request.HandleError(w, request.ReadAndValidate(w, r, &payload)) {
		return
	}

	message, err := h.chats.SendMessage(r.Context(), CurrentUser(r), requestID, payload.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, "message sent", message)
}

func (h *ChatHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID, ok := uuidParam(w, r, "requestID")
	if !ok {
		return
	}

	messages, err := h.chats.Messages(r.Context(), CurrentUser(r), requestID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, "messages", messages)
}
