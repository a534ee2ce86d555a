package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/zeecare/hospital-system/internal/core/domain"
	"github.com/zeecare/hospital-system/internal/core/ports"
)

// MessageService stores and lists contact-form messages.
type MessageService struct {
	repo ports.MessageRepository
	log  zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, log zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, log: log}
}

// Send persists a contact-form submission.
func (s *MessageService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" || in.Message == "" {
		return nil, domain.ErrMissingFields
	}

	msg := &domain.Message{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", in.Email).Msg("contact message received")
	return created, nil
}

// List returns every stored message for the dashboard.
func (s *MessageService) List(ctx context.Context) ([]domain.Message, error) {
	return s.repo.FindAll(ctx)
}
