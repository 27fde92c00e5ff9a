package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "tixswap/internal/errors"
	"tixswap/internal/lifecycle"
	"tixswap/internal/logger"
	"tixswap/internal/models"
	"tixswap/internal/monitoring"
	"tixswap/internal/view"
)

type TicketService struct {
	tickets TicketStore
	nats    Publisher
}

func NewTicketService(tickets TicketStore, nats Publisher) *TicketService {
	return &TicketService{tickets: tickets, nats: nats}
}

// Create lists a new ticket for ownerID. New tickets start available with no
// requests.
func (s *TicketService) Create(ctx context.Context, ownerID string, attrs *models.TicketAttrs) (*models.TicketView, error) {
	if err := attrs.Validate(); err != nil {
		monitoring.RecordTransition("create", err)
		return nil, err
	}

	ticket := &models.Ticket{
		ID:      uuid.New().String(),
		OwnerID: ownerID,
		Status:  models.TicketAvailable,
	}
	attrs.Apply(ticket)

	if err := s.tickets.Create(ctx, ticket); err != nil {
		monitoring.RecordTransition("create", err)
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}
	monitoring.RecordTransition("create", nil)

	s.publish(ctx, models.EventTicketCreated, ticket, ownerID, "")

	v := view.Project(ticket, ownerID)
	return &v, nil
}

// Get returns viewerID's projection of one ticket.
func (s *TicketService) Get(ctx context.Context, viewerID, ticketID string) (*models.TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return nil, apperrors.ErrNotFound
	}

	v := view.Project(ticket, viewerID)
	return &v, nil
}

// List returns every ticket projected for the viewer. Filtering by status is
// a view concern: the projector needs the full set to compute per-user
// statuses.
func (s *TicketService) List(ctx context.Context, viewerID string) (models.ListTicketsResponse, error) {
	tickets, err := s.tickets.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return view.ProjectAll(tickets, viewerID), nil
}

// ListMine returns the tickets the caller owns.
func (s *TicketService) ListMine(ctx context.Context, ownerID string) (models.ListTicketsResponse, error) {
	tickets, err := s.tickets.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own tickets: %w", err)
	}
	return view.ProjectAll(tickets, ownerID), nil
}

// ListRequested returns the tickets the caller holds a live request on.
func (s *TicketService) ListRequested(ctx context.Context, userID string) (models.ListTicketsResponse, error) {
	tickets, err := s.tickets.GetByRequester(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requested tickets: %w", err)
	}
	return view.ProjectAll(tickets, userID), nil
}

// Request registers callerID's interest in a ticket.
func (s *TicketService) Request(ctx context.Context, callerID, ticketID string) (*models.TicketView, error) {
	return s.transition(ctx, ticketID, "request", models.EventTicketRequested, callerID, "",
		func(t *models.Ticket) error { return lifecycle.RequestTicket(t, callerID) })
}

// CancelRequest withdraws callerID's request entirely.
func (s *TicketService) CancelRequest(ctx context.Context, callerID, ticketID string) (*models.TicketView, error) {
	return s.transition(ctx, ticketID, "cancel_request", models.EventRequestCancelled, callerID, "",
		func(t *models.Ticket) error { return lifecycle.CancelRequest(t, callerID) })
}

// Accept lets the owner accept targetUserID's request.
func (s *TicketService) Accept(ctx context.Context, callerID, ticketID, targetUserID string) (*models.TicketView, error) {
	return s.transition(ctx, ticketID, "accept", models.EventRequestAccepted, callerID, targetUserID,
		func(t *models.Ticket) error { return lifecycle.AcceptRequest(t, callerID, targetUserID) })
}

// Reject lets the owner reject targetUserID's request.
func (s *TicketService) Reject(ctx context.Context, callerID, ticketID, targetUserID string) (*models.TicketView, error) {
	return s.transition(ctx, ticketID, "reject", models.EventRequestRejected, callerID, targetUserID,
		func(t *models.Ticket) error { return lifecycle.RejectRequest(t, callerID, targetUserID) })
}

// MarkSold moves the ticket to its terminal state.
func (s *TicketService) MarkSold(ctx context.Context, callerID, ticketID string) (*models.TicketView, error) {
	return s.transition(ctx, ticketID, "mark_sold", models.EventTicketSold, callerID, "",
		func(t *models.Ticket) error { return lifecycle.MarkSold(t, callerID) })
}

// Update overwrites the ticket's editable attributes.
func (s *TicketService) Update(ctx context.Context, callerID, ticketID string, attrs *models.TicketAttrs) (*models.TicketView, error) {
	return s.transition(ctx, ticketID, "update", models.EventTicketUpdated, callerID, "",
		func(t *models.Ticket) error { return lifecycle.UpdateAttributes(t, callerID, attrs) })
}

// Delete removes a ticket and all its embedded requests.
func (s *TicketService) Delete(ctx context.Context, callerID, ticketID string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		monitoring.RecordTransition("delete", apperrors.ErrNotFound)
		return apperrors.ErrNotFound
	}

	if err := lifecycle.CanDelete(ticket, callerID); err != nil {
		monitoring.RecordTransition("delete", err)
		return err
	}

	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		monitoring.RecordTransition("delete", err)
		return err
	}
	monitoring.RecordTransition("delete", nil)

	s.publish(ctx, models.EventTicketDeleted, ticket, callerID, "")
	return nil
}

// transition runs one read-modify-write cycle against a ticket: load, apply
// the lifecycle function, save with the version check, then publish. A
// Conflict from Save is surfaced as-is; retrying the whole cycle is the
// caller's decision.
func (s *TicketService) transition(ctx context.Context, ticketID, action, subject, actorID, targetID string, apply func(*models.Ticket) error) (*models.TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		monitoring.RecordTransition(action, apperrors.ErrNotFound)
		return nil, apperrors.ErrNotFound
	}

	if err := apply(ticket); err != nil {
		monitoring.RecordTransition(action, err)
		return nil, err
	}

	if err := s.tickets.Save(ctx, ticket); err != nil {
		monitoring.RecordTransition(action, err)
		return nil, err
	}
	monitoring.RecordTransition(action, nil)

	s.publish(ctx, subject, ticket, actorID, targetID)

	v := view.Project(ticket, actorID)
	return &v, nil
}

// publish emits a domain event. Publish failures are logged and never fail
// the operation.
func (s *TicketService) publish(ctx context.Context, subject string, t *models.Ticket, actorID, targetID string) {
	if s.nats == nil {
		return
	}

	event := models.TicketEvent{
		TicketID:     t.ID,
		ActorID:      actorID,
		TargetUserID: targetID,
		TicketStatus: t.Status,
		Timestamp:    time.Now().UTC(),
	}

	if err := s.nats.Publish(subject, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish ticket event",
			"error", err,
			"ticket_id", t.ID,
			"event_type", subject)
	}
}
