package ports

import (
	"context"

	"github.com/zeecare/hospital-system/internal/core/domain"
)

// MessageRepository is the persistence port for contact messages.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindAll(ctx context.Context) ([]domain.Message, error)
}

// SendMessageInput is a validated contact-form submission.
type SendMessageInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
}

// MessageService is the use-case port for the contact-message flow.
type MessageService interface {
	Send(ctx context.Context, in SendMessageInput) (*domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
}
