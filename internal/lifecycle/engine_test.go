package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tixswap/internal/errors"
	"tixswap/internal/models"
)

const (
	owner = "owner-1"
	userA = "user-a"
	userB = "user-b"
	userC = "user-c"
)

func validAttrs() *models.TicketAttrs {
	price := int64(250000)
	departure := time.Date(2026, 9, 10, 8, 30, 0, 0, time.UTC)
	return &models.TicketAttrs{
		StartLocation: "Almaty",
		EndLocation:   "Astana",
		DepartureTime: departure,
		ArrivalTime:   departure.Add(14 * time.Hour),
		Price:         &price,
		ContactNumber: "7012345678",
	}
}

func newTicket() *models.Ticket {
	return &models.Ticket{
		ID:      "ticket-1",
		OwnerID: owner,
		Status:  models.TicketAvailable,
	}
}

// statusInvariant checks that under_discussion holds exactly when an
// accepted request exists.
func statusInvariant(t *testing.T, ticket *models.Ticket) {
	t.Helper()
	if ticket.Status == models.TicketSold {
		return
	}
	if ticket.AcceptedRequest() != nil {
		assert.Equal(t, models.TicketUnderDiscussion, ticket.Status)
	} else {
		assert.Equal(t, models.TicketAvailable, ticket.Status)
	}
}

func TestRequestTicket(t *testing.T) {
	ticket := newTicket()

	err := RequestTicket(ticket, userA)
	require.NoError(t, err)
	require.Len(t, ticket.Requests, 1)
	assert.Equal(t, userA, ticket.Requests[0].UserID)
	assert.Equal(t, models.RequestPending, ticket.Requests[0].Status)
	assert.Equal(t, models.TicketAvailable, ticket.Status)
	statusInvariant(t, ticket)
}

func TestRequestTicketOwnRejected(t *testing.T) {
	ticket := newTicket()

	err := RequestTicket(ticket, owner)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Empty(t, ticket.Requests)
}

func TestRequestTicketNotIdempotent(t *testing.T) {
	ticket := newTicket()

	require.NoError(t, RequestTicket(ticket, userA))
	err := RequestTicket(ticket, userA)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRequested)
	assert.Len(t, ticket.Requests, 1)
}

func TestRequestTicketSold(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, MarkSold(ticket, owner))

	err := RequestTicket(ticket, userA)
	assert.ErrorIs(t, err, apperrors.ErrTicketUnavailable)
}

func TestCancelRequestRemovesEntirely(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, RequestTicket(ticket, userB))

	err := CancelRequest(ticket, userA)
	require.NoError(t, err)
	require.Len(t, ticket.Requests, 1)
	assert.Equal(t, userB, ticket.Requests[0].UserID)
}

func TestCancelRequestWithoutRequest(t *testing.T) {
	ticket := newTicket()

	err := CancelRequest(ticket, userA)
	assert.ErrorIs(t, err, apperrors.ErrNoSuchRequest)
}

func TestCancelAcceptedRequestRevertsStatus(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, AcceptRequest(ticket, owner, userA))
	require.Equal(t, models.TicketUnderDiscussion, ticket.Status)

	require.NoError(t, CancelRequest(ticket, userA))
	assert.Equal(t, models.TicketAvailable, ticket.Status)
	assert.Empty(t, ticket.Requests)
	statusInvariant(t, ticket)
}

func TestCancelThenRerequestRoundTrip(t *testing.T) {
	for _, setup := range []func(*models.Ticket){
		func(tk *models.Ticket) {}, // pending
		func(tk *models.Ticket) { require.NoError(t, AcceptRequest(tk, owner, userA)) },
		func(tk *models.Ticket) { require.NoError(t, RejectRequest(tk, owner, userA)) },
	} {
		ticket := newTicket()
		require.NoError(t, RequestTicket(ticket, userA))
		setup(ticket)

		require.NoError(t, CancelRequest(ticket, userA))
		require.NoError(t, RequestTicket(ticket, userA))

		require.Len(t, ticket.Requests, 1)
		assert.Equal(t, models.RequestPending, ticket.Requests[0].Status)
		statusInvariant(t, ticket)
	}
}

func TestAcceptRequest(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))

	err := AcceptRequest(ticket, owner, userA)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, ticket.Requests[0].Status)
	assert.Equal(t, models.TicketUnderDiscussion, ticket.Status)
	statusInvariant(t, ticket)
}

func TestAcceptRequestNotOwner(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))

	err := AcceptRequest(ticket, userB, userA)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, models.RequestPending, ticket.Requests[0].Status)
}

func TestAcceptRequestNoSuchRequest(t *testing.T) {
	ticket := newTicket()

	err := AcceptRequest(ticket, owner, userA)
	assert.ErrorIs(t, err, apperrors.ErrNoSuchRequest)
}

func TestAcceptRejectedRequestAllowed(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, RejectRequest(ticket, owner, userA))

	err := AcceptRequest(ticket, owner, userA)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, ticket.Requests[0].Status)
	assert.Equal(t, models.TicketUnderDiscussion, ticket.Status)
}

// Accepting a second requester demotes the previously accepted one: there is
// never more than one accepted request per ticket.
func TestAcceptDemotesPreviousWinner(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, RequestTicket(ticket, userB))

	require.NoError(t, AcceptRequest(ticket, owner, userA))
	assert.Equal(t, models.RequestPending, ticket.RequestBy(userB).Status)

	require.NoError(t, AcceptRequest(ticket, owner, userB))
	assert.Equal(t, models.RequestAccepted, ticket.RequestBy(userB).Status)
	assert.Equal(t, models.RequestRejected, ticket.RequestBy(userA).Status)
	assert.Equal(t, models.TicketUnderDiscussion, ticket.Status)

	accepted := 0
	for _, req := range ticket.Requests {
		if req.Status == models.RequestAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
	statusInvariant(t, ticket)
}

func TestReacceptSameWinnerKeepsAccepted(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, AcceptRequest(ticket, owner, userA))

	require.NoError(t, AcceptRequest(ticket, owner, userA))
	assert.Equal(t, models.RequestAccepted, ticket.RequestBy(userA).Status)
}

func TestRejectRequest(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))

	err := RejectRequest(ticket, owner, userA)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, ticket.Requests[0].Status)
	assert.Equal(t, models.TicketAvailable, ticket.Status)
}

func TestRejectAcceptedRequestRevertsStatus(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, AcceptRequest(ticket, owner, userA))
	require.Equal(t, models.TicketUnderDiscussion, ticket.Status)

	require.NoError(t, RejectRequest(ticket, owner, userA))
	assert.Equal(t, models.TicketAvailable, ticket.Status)
	statusInvariant(t, ticket)
}

func TestRejectKeepsDiscussionWhenAnotherAccepted(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, RequestTicket(ticket, userB))
	require.NoError(t, AcceptRequest(ticket, owner, userA))

	require.NoError(t, RejectRequest(ticket, owner, userB))
	assert.Equal(t, models.TicketUnderDiscussion, ticket.Status)
	statusInvariant(t, ticket)
}

func TestRejectRequestNotOwner(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))

	err := RejectRequest(ticket, userA, userA)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestMarkSold(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, AcceptRequest(ticket, owner, userA))

	err := MarkSold(ticket, owner)
	require.NoError(t, err)
	assert.Equal(t, models.TicketSold, ticket.Status)
	// Requests are frozen as-is.
	assert.Equal(t, models.RequestAccepted, ticket.Requests[0].Status)
}

func TestMarkSoldTwiceFails(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, MarkSold(ticket, owner))

	err := MarkSold(ticket, owner)
	assert.ErrorIs(t, err, apperrors.ErrTicketSold)
}

func TestMarkSoldNotOwner(t *testing.T) {
	ticket := newTicket()

	err := MarkSold(ticket, userA)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, models.TicketAvailable, ticket.Status)
}

// Sold is terminal: every lifecycle operation fails afterwards and none of
// them mutates the frozen state.
func TestSoldIsTerminal(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, MarkSold(ticket, owner))

	frozen := *ticket
	frozenRequests := append([]models.Request(nil), ticket.Requests...)

	attrs := validAttrs()

	assert.ErrorIs(t, RequestTicket(ticket, userC), apperrors.ErrTicketUnavailable)
	assert.ErrorIs(t, CancelRequest(ticket, userA), apperrors.ErrTicketSold)
	assert.ErrorIs(t, AcceptRequest(ticket, owner, userA), apperrors.ErrTicketSold)
	assert.ErrorIs(t, RejectRequest(ticket, owner, userA), apperrors.ErrTicketSold)
	assert.ErrorIs(t, MarkSold(ticket, owner), apperrors.ErrTicketSold)
	assert.ErrorIs(t, UpdateAttributes(ticket, owner, attrs), apperrors.ErrTicketSold)
	assert.ErrorIs(t, CanDelete(ticket, owner), apperrors.ErrTicketSold)

	assert.Equal(t, frozen.Status, ticket.Status)
	assert.Equal(t, frozenRequests, ticket.Requests)
}

func TestUpdateAttributes(t *testing.T) {
	ticket := newTicket()
	require.NoError(t, RequestTicket(ticket, userA))
	require.NoError(t, AcceptRequest(ticket, owner, userA))

	attrs := validAttrs()
	err := UpdateAttributes(ticket, owner, attrs)
	require.NoError(t, err)

	assert.Equal(t, attrs.StartLocation, ticket.StartLocation)
	assert.Equal(t, *attrs.Price, ticket.Price)
	// Status and requests are untouched by attribute updates.
	assert.Equal(t, models.TicketUnderDiscussion, ticket.Status)
	assert.Len(t, ticket.Requests, 1)
}

func TestUpdateAttributesNotOwner(t *testing.T) {
	ticket := newTicket()

	err := UpdateAttributes(ticket, userA, validAttrs())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateAttributesValidation(t *testing.T) {
	ticket := newTicket()

	attrs := validAttrs()
	attrs.ContactNumber = "not-a-number"

	err := UpdateAttributes(ticket, owner, attrs)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, ticket.StartLocation)
}

func TestCanDelete(t *testing.T) {
	ticket := newTicket()

	assert.NoError(t, CanDelete(ticket, owner))
	assert.ErrorIs(t, CanDelete(ticket, userA), apperrors.ErrForbidden)
}
