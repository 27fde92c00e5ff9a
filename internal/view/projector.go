// Package view derives caller-relative projections of tickets. Projection is
// a pure function of the aggregate and the viewer id; it never mutates state.
package view

import (
	"fmt"

	"tixswap/internal/models"
)

// Project computes viewerID's read-only view of a ticket.
//
// The contact number is visible to the owner and to a requester whose own
// request has been accepted; everyone else gets a blank. The display status
// resolves by priority: sold, then the viewer's own request status, then the
// ticket's negotiation state.
func Project(t *models.Ticket, viewerID string) models.TicketView {
	v := models.TicketView{
		ID:            t.ID,
		StartLocation: t.StartLocation,
		EndLocation:   t.EndLocation,
		DepartureTime: t.DepartureTime,
		ArrivalTime:   t.ArrivalTime,
		Price:         FormatPrice(t.Price),
		OwnerID:       t.OwnerID,
		Status:        t.Status,
		IsOwner:       t.IsOwner(viewerID),
	}

	myReq := t.RequestBy(viewerID)
	if myReq != nil {
		v.IsRequested = true
		v.MyRequestStatus = myReq.Status
	}

	v.ShowContact = myReq != nil && myReq.Status == models.RequestAccepted
	if v.ShowContact || v.IsOwner {
		v.ContactNumber = t.ContactNumber
	}

	v.DisplayStatus = displayStatus(t, myReq)

	// Only the owner sees the full request list.
	if v.IsOwner {
		v.Requests = t.Requests
	}

	return v
}

// ProjectAll projects a slice of tickets for one viewer.
func ProjectAll(tickets []models.Ticket, viewerID string) models.ListTicketsResponse {
	result := make(models.ListTicketsResponse, len(tickets))
	for i := range tickets {
		result[i] = Project(&tickets[i], viewerID)
	}
	return result
}

func displayStatus(t *models.Ticket, myReq *models.Request) string {
	if t.Status == models.TicketSold {
		return models.TicketSold
	}
	if myReq != nil {
		return myReq.Status
	}
	if t.Status == models.TicketUnderDiscussion {
		return models.TicketUnderDiscussion
	}
	return models.TicketAvailable
}

// FormatPrice renders a minor-unit price as a decimal string.
func FormatPrice(price int64) string {
	return fmt.Sprintf("%.2f", float64(price)/100.0)
}
