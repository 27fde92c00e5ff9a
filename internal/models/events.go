package models

import "time"

// NATS Event Types
const (
	EventTicketCreated    = "ticket.created"
	EventTicketUpdated    = "ticket.updated"
	EventTicketDeleted    = "ticket.deleted"
	EventTicketRequested  = "ticket.requested"
	EventRequestCancelled = "request.cancelled"
	EventRequestAccepted  = "request.accepted"
	EventRequestRejected  = "request.rejected"
	EventTicketSold       = "ticket.sold"
)

// TicketEvent is the common payload for ticket lifecycle events. ActorID is
// the user who triggered the transition, TargetUserID the requester the
// action was taken on (accept/reject only).
type TicketEvent struct {
	TicketID     string    `json:"ticket_id"`
	ActorID      string    `json:"actor_id"`
	TargetUserID string    `json:"target_user_id,omitempty"`
	TicketStatus string    `json:"ticket_status"`
	Timestamp    time.Time `json:"timestamp"`
}
