package consumers

import (
	"context"
	"log/slog"

	"tixswap/internal/config"
	"tixswap/internal/database"
	"tixswap/internal/messaging"
	"tixswap/internal/models"
	"tixswap/internal/repository"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(db)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: NewHandlers(repos),
	}, nil
}

// Start subscribes to every lifecycle subject with a durable queue group, so
// restarts pick up where the trail left off.
func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	subjects := []string{
		models.EventTicketCreated,
		models.EventTicketUpdated,
		models.EventTicketDeleted,
		models.EventTicketRequested,
		models.EventRequestCancelled,
		models.EventRequestAccepted,
		models.EventRequestRejected,
		models.EventTicketSold,
	}

	for _, subject := range subjects {
		if _, err := cs.nats.SubscribeQueue(subject, "activity", cs.handlers.HandleTicketEvent(subject)); err != nil {
			return err
		}
	}

	slog.Info("All consumers started successfully")
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
