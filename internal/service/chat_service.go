package service

import (
	"context"

	"campuspool/internal/models"
	"campuspool/internal/repository"

	"github.com/google/uuid"
)

type ChatService struct {
	chats      *repository.ChatRepository
	requestSvc *RequestService
}

func NewChatService(chats *repository.ChatRepository, requestSvc *RequestService) *ChatService {
	return &ChatService{chats: chats, requestSvc: requestSvc}
}

// SendMessage posts a message on a request's chat. Chat opens when the
// request is accepted and closes when the leg stops being ongoing.
func (s *ChatService) SendMessage(ctx context.Context, sender *models.User, requestID uuid.UUID, text string) (*models.ChatMessage, error) {
	if err := s.authorize(ctx, sender, requestID); err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		ID:            uuid.New(),
		RideRequestID: requestID,
		SenderID:      sender.ID,
		Message:       text,
	}
	if err := s.chats.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ChatService) Messages(ctx context.Context, user *models.User, requestID uuid.UUID) ([]models.ChatMessage, error) {
	if err := s.authorize(ctx, user, requestID); err != nil {
		return nil, err
	}
	return s.chats.ListByRequest(ctx, requestID)
}

func (s *ChatService) authorize(ctx context.Context, user *models.User, requestID uuid.UUID) error {
	request, ride, err := s.requestSvc.load(ctx, requestID)
	if err != nil {
		return err
	}
	if user.ID != request.RiderID && user.ID != ride.DriverID {
		return ErrNotParticipant
	}
	if request.Status != models.RequestStatusAccepted && request.Status != models.RequestStatusOngoing {
		return ErrChatUnavailable
	}
	return nil
}
