package models

import (
	"regexp"
	"strings"
	"time"

	apperrors "tixswap/internal/errors"
)

// Contact numbers are plain 10-digit strings, same rule the mobile clients
// enforce on input.
var contactNumberRe = regexp.MustCompile(`^\d{10}$`)

// SignupRequest - payload for POST /api/auth/signup
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupResponse - response after a successful signup
type SignupResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginRequest - payload for POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed bearer token
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// TicketAttrs are the owner-editable attributes of a ticket. Status and
// requests are deliberately absent: those change only through the lifecycle
// operations.
type TicketAttrs struct {
	StartLocation string    `json:"start_location" binding:"required"`
	EndLocation   string    `json:"end_location" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	Price         *int64    `json:"price" binding:"required"`
	ContactNumber string    `json:"contact_number" binding:"required"`
}

// Validate checks the attribute set beyond what binding tags cover.
func (a *TicketAttrs) Validate() error {
	if strings.TrimSpace(a.StartLocation) == "" {
		return apperrors.NewValidation("start_location", "must not be empty")
	}
	if strings.TrimSpace(a.EndLocation) == "" {
		return apperrors.NewValidation("end_location", "must not be empty")
	}
	if a.DepartureTime.IsZero() {
		return apperrors.NewValidation("departure_time", "must be set")
	}
	if a.ArrivalTime.IsZero() {
		return apperrors.NewValidation("arrival_time", "must be set")
	}
	if a.Price == nil {
		return apperrors.NewValidation("price", "must be set")
	}
	if *a.Price < 0 {
		return apperrors.NewValidation("price", "must be non-negative")
	}
	if !contactNumberRe.MatchString(a.ContactNumber) {
		return apperrors.NewValidation("contact_number", "must be a 10-digit number")
	}
	return nil
}

// Apply overwrites the ticket's editable attributes in place.
func (a *TicketAttrs) Apply(t *Ticket) {
	t.StartLocation = a.StartLocation
	t.EndLocation = a.EndLocation
	t.DepartureTime = a.DepartureTime
	t.ArrivalTime = a.ArrivalTime
	t.Price = *a.Price
	t.ContactNumber = a.ContactNumber
}

// TargetUserRequest - payload for accept/reject, naming the requester the
// owner is deciding on
type TargetUserRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// TicketView is the caller-relative projection of a ticket. Fields that
// depend on who is looking (contact number, display status, own request
// state) are computed by the view package.
type TicketView struct {
	ID              string    `json:"id"`
	StartLocation   string    `json:"start_location"`
	EndLocation     string    `json:"end_location"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	Price           string    `json:"price"`
	ContactNumber   string    `json:"contact_number,omitempty"`
	OwnerID         string    `json:"owner_id"`
	Status          string    `json:"status"`
	DisplayStatus   string    `json:"display_status"`
	IsOwner         bool      `json:"is_owner"`
	ShowContact     bool      `json:"show_contact_number"`
	IsRequested     bool      `json:"is_requested"`
	MyRequestStatus string    `json:"my_request_status,omitempty"`
	Requests        []Request `json:"requests,omitempty"`
}

// ListTicketsResponse - list of caller-relative ticket views
type ListTicketsResponse []TicketView
