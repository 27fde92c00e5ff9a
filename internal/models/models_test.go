package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tixswap/internal/errors"
)

func baseAttrs() TicketAttrs {
	price := int64(180000)
	departure := time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC)
	return TicketAttrs{
		StartLocation: "Shymkent",
		EndLocation:   "Almaty",
		DepartureTime: departure,
		ArrivalTime:   departure.Add(10 * time.Hour),
		Price:         &price,
		ContactNumber: "7771234567",
	}
}

func TestTicketAttrsValidate(t *testing.T) {
	negative := int64(-1)

	tests := []struct {
		name   string
		mutate func(*TicketAttrs)
		field  string
	}{
		{"valid", func(*TicketAttrs) {}, ""},
		{"blank start", func(a *TicketAttrs) { a.StartLocation = "   " }, "start_location"},
		{"blank end", func(a *TicketAttrs) { a.EndLocation = "" }, "end_location"},
		{"zero departure", func(a *TicketAttrs) { a.DepartureTime = time.Time{} }, "departure_time"},
		{"zero arrival", func(a *TicketAttrs) { a.ArrivalTime = time.Time{} }, "arrival_time"},
		{"missing price", func(a *TicketAttrs) { a.Price = nil }, "price"},
		{"negative price", func(a *TicketAttrs) { a.Price = &negative }, "price"},
		{"short contact", func(a *TicketAttrs) { a.ContactNumber = "12345" }, "contact_number"},
		{"non-numeric contact", func(a *TicketAttrs) { a.ContactNumber = "77x1234567" }, "contact_number"},
		{"too long contact", func(a *TicketAttrs) { a.ContactNumber = "77712345678" }, "contact_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := baseAttrs()
			tt.mutate(&attrs)

			err := attrs.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.True(t, apperrors.IsValidation(err))
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestTicketAttrsApplyLeavesLifecycleAlone(t *testing.T) {
	ticket := &Ticket{
		ID:      "t1",
		OwnerID: "owner",
		Status:  TicketUnderDiscussion,
		Requests: []Request{
			{UserID: "u1", Status: RequestAccepted},
		},
	}

	attrs := baseAttrs()
	attrs.Apply(ticket)

	assert.Equal(t, "Shymkent", ticket.StartLocation)
	assert.Equal(t, int64(180000), ticket.Price)
	assert.Equal(t, TicketUnderDiscussion, ticket.Status)
	require.Len(t, ticket.Requests, 1)
	assert.Equal(t, RequestAccepted, ticket.Requests[0].Status)
}

func TestTicketRequestHelpers(t *testing.T) {
	ticket := &Ticket{
		OwnerID: "owner",
		Requests: []Request{
			{UserID: "u1", Status: RequestPending},
			{UserID: "u2", Status: RequestAccepted},
		},
	}

	assert.True(t, ticket.IsOwner("owner"))
	assert.False(t, ticket.IsOwner("u1"))

	require.NotNil(t, ticket.RequestBy("u1"))
	assert.Nil(t, ticket.RequestBy("nobody"))

	accepted := ticket.AcceptedRequest()
	require.NotNil(t, accepted)
	assert.Equal(t, "u2", accepted.UserID)

	assert.True(t, ticket.RemoveRequest("u1"))
	assert.False(t, ticket.RemoveRequest("u1"))
	require.Len(t, ticket.Requests, 1)
	assert.Equal(t, "u2", ticket.Requests[0].UserID)
}
