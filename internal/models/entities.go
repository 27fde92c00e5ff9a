package models

import (
	"time"
)

// Ticket statuses
const (
	TicketAvailable       = "available"
	TicketUnderDiscussion = "under_discussion"
	TicketSold            = "sold"
)

// Request statuses
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// User represents a registered user
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Request is a single user's expressed interest in a ticket.
// It lives embedded in the Ticket aggregate, never on its own.
type Request struct {
	UserID      string    `json:"user_id" db:"user_id"`
	Status      string    `json:"status" db:"status"`
	RequestedAt time.Time `json:"requested_at" db:"requested_at"`
}

// Ticket represents a listed, transferable travel ticket.
// Version backs optimistic concurrency on save.
type Ticket struct {
	ID            string    `json:"id" db:"id"`
	StartLocation string    `json:"start_location" db:"start_location"`
	EndLocation   string    `json:"end_location" db:"end_location"`
	DepartureTime time.Time `json:"departure_time" db:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time" db:"arrival_time"`
	Price         int64     `json:"price" db:"price"`
	ContactNumber string    `json:"contact_number" db:"contact_number"`
	OwnerID       string    `json:"owner_id" db:"owner_id"`
	Status        string    `json:"status" db:"status"`
	Version       int64     `json:"-" db:"version"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	// Requests keeps insertion order; at most one entry per user.
	Requests []Request `json:"requests,omitempty"`
}

// RequestBy returns the live request held by userID, or nil.
func (t *Ticket) RequestBy(userID string) *Request {
	for i := range t.Requests {
		if t.Requests[i].UserID == userID {
			return &t.Requests[i]
		}
	}
	return nil
}

// AcceptedRequest returns the currently accepted request, or nil.
func (t *Ticket) AcceptedRequest() *Request {
	for i := range t.Requests {
		if t.Requests[i].Status == RequestAccepted {
			return &t.Requests[i]
		}
	}
	return nil
}

// RemoveRequest deletes userID's request, preserving the order of the rest.
// Returns false when no such request exists.
func (t *Ticket) RemoveRequest(userID string) bool {
	for i := range t.Requests {
		if t.Requests[i].UserID == userID {
			t.Requests = append(t.Requests[:i], t.Requests[i+1:]...)
			return true
		}
	}
	return false
}

// IsOwner reports whether userID created this ticket.
func (t *Ticket) IsOwner(userID string) bool {
	return t.OwnerID == userID
}

// TicketActivity is one row of the audit trail written by the consumers
// binary from lifecycle events.
type TicketActivity struct {
	ID         int64     `json:"id" db:"id"`
	TicketID   string    `json:"ticket_id" db:"ticket_id"`
	ActorID    *string   `json:"actor_id" db:"actor_id"`
	Action     string    `json:"action" db:"action"`
	Detail     *string   `json:"detail" db:"detail"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
}
