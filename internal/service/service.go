package service

import (
	"context"

	"tixswap/internal/auth"
	"tixswap/internal/messaging"
	"tixswap/internal/models"
	"tixswap/internal/repository"
)

// UserStore is the slice of the user repository the services need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// TicketStore is the ticket repository contract. GetByID returns (nil, nil)
// for a missing ticket; Save enforces the optimistic version check.
type TicketStore interface {
	Create(ctx context.Context, ticket *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	GetAll(ctx context.Context) ([]models.Ticket, error)
	GetByOwner(ctx context.Context, ownerID string) ([]models.Ticket, error)
	GetByRequester(ctx context.Context, userID string) ([]models.Ticket, error)
	Save(ctx context.Context, ticket *models.Ticket) error
	Delete(ctx context.Context, id string) error
}

// Publisher emits domain events after successful mutations.
type Publisher interface {
	Publish(subject string, data interface{}) error
}

type Services struct {
	Auth    *AuthService
	Tickets *TicketService
}

func NewServices(repos *repository.Repositories, nats *messaging.NATSClient, jwtService *auth.JWTService, hasher *auth.PasswordHasher) *Services {
	return &Services{
		Auth:    NewAuthService(repos.Users, jwtService, hasher),
		Tickets: NewTicketService(repos.Tickets, nats),
	}
}
