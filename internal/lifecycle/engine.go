// Package lifecycle implements the ticket/request state machine. All
// functions operate on the in-memory aggregate only; loading and saving the
// ticket is the caller's job. Every mutating operation checks authorization
// and the current state up front and returns a typed error, so a failed call
// never leaves the aggregate half-changed.
package lifecycle

import (
	"time"

	apperrors "tixswap/internal/errors"
	"tixswap/internal/models"
)

// RequestTicket appends a pending request by callerID.
//
// A sold ticket accepts no new requests, an owner cannot request their own
// ticket, and a user holds at most one live request per ticket.
func RequestTicket(t *models.Ticket, callerID string) error {
	if t.Status == models.TicketSold {
		return apperrors.ErrTicketUnavailable
	}
	if t.IsOwner(callerID) {
		return apperrors.ErrForbidden
	}
	if t.RequestBy(callerID) != nil {
		return apperrors.ErrAlreadyRequested
	}

	t.Requests = append(t.Requests, models.Request{
		UserID:      callerID,
		Status:      models.RequestPending,
		RequestedAt: time.Now().UTC(),
	})
	deriveStatus(t)
	return nil
}

// CancelRequest removes callerID's request entirely, whatever its status.
// Cancelling an accepted request can revert the ticket to available.
func CancelRequest(t *models.Ticket, callerID string) error {
	if t.Status == models.TicketSold {
		return apperrors.ErrTicketSold
	}
	if !t.RemoveRequest(callerID) {
		return apperrors.ErrNoSuchRequest
	}
	deriveStatus(t)
	return nil
}

// AcceptRequest marks targetUserID's request accepted and moves the ticket
// into discussion. Only one request may be accepted at a time: accepting a
// new one demotes the previously accepted request to rejected. Re-accepting
// a rejected request is allowed.
func AcceptRequest(t *models.Ticket, callerID, targetUserID string) error {
	if !t.IsOwner(callerID) {
		return apperrors.ErrForbidden
	}
	if t.Status == models.TicketSold {
		return apperrors.ErrTicketSold
	}
	req := t.RequestBy(targetUserID)
	if req == nil {
		return apperrors.ErrNoSuchRequest
	}

	if prev := t.AcceptedRequest(); prev != nil && prev.UserID != targetUserID {
		prev.Status = models.RequestRejected
	}
	req.Status = models.RequestAccepted
	deriveStatus(t)
	return nil
}

// RejectRequest marks targetUserID's request rejected. When no accepted
// request remains the ticket drops back to available.
func RejectRequest(t *models.Ticket, callerID, targetUserID string) error {
	if !t.IsOwner(callerID) {
		return apperrors.ErrForbidden
	}
	if t.Status == models.TicketSold {
		return apperrors.ErrTicketSold
	}
	req := t.RequestBy(targetUserID)
	if req == nil {
		return apperrors.ErrNoSuchRequest
	}

	req.Status = models.RequestRejected
	deriveStatus(t)
	return nil
}

// MarkSold moves the ticket to its terminal state. Outstanding requests are
// frozen as-is. Calling it on an already sold ticket fails rather than
// no-ops.
func MarkSold(t *models.Ticket, callerID string) error {
	if !t.IsOwner(callerID) {
		return apperrors.ErrForbidden
	}
	if t.Status == models.TicketSold {
		return apperrors.ErrTicketSold
	}

	t.Status = models.TicketSold
	return nil
}

// UpdateAttributes overwrites the route, price and contact attributes.
// Status and requests are not writable through here; those change only via
// the named lifecycle operations.
func UpdateAttributes(t *models.Ticket, callerID string, attrs *models.TicketAttrs) error {
	if !t.IsOwner(callerID) {
		return apperrors.ErrForbidden
	}
	if t.Status == models.TicketSold {
		return apperrors.ErrTicketSold
	}
	if err := attrs.Validate(); err != nil {
		return err
	}

	attrs.Apply(t)
	return nil
}

// CanDelete checks whether callerID may delete the ticket. A sold ticket is
// terminal and stays on record.
func CanDelete(t *models.Ticket, callerID string) error {
	if !t.IsOwner(callerID) {
		return apperrors.ErrForbidden
	}
	if t.Status == models.TicketSold {
		return apperrors.ErrTicketSold
	}
	return nil
}

// deriveStatus recomputes the ticket status from its requests. It runs after
// every request mutation so the status never drifts from the request set:
// an accepted request exists exactly when the ticket is under discussion.
func deriveStatus(t *models.Ticket) {
	if t.Status == models.TicketSold {
		return
	}
	if t.AcceptedRequest() != nil {
		t.Status = models.TicketUnderDiscussion
	} else {
		t.Status = models.TicketAvailable
	}
}
