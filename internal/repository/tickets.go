package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"tixswap/internal/database"
	apperrors "tixswap/internal/errors"
	"tixswap/internal/models"
)

type TicketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, start_location, end_location, departure_time, arrival_time,
       price, contact_number, owner_id, status, version, created_at, updated_at`

func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (id, start_location, end_location, departure_time, arrival_time,
		                     price, contact_number, owner_id, status, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
		RETURNING version, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		ticket.ID,
		ticket.StartLocation,
		ticket.EndLocation,
		ticket.DepartureTime,
		ticket.ArrivalTime,
		ticket.Price,
		ticket.ContactNumber,
		ticket.OwnerID,
		ticket.Status,
	).Scan(&ticket.Version, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *TicketRepository) GetByID(ctx context.Context, id string) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.StartLocation,
		&ticket.EndLocation,
		&ticket.DepartureTime,
		&ticket.ArrivalTime,
		&ticket.Price,
		&ticket.ContactNumber,
		&ticket.OwnerID,
		&ticket.Status,
		&ticket.Version,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadRequests(ctx, []*models.Ticket{ticket}); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *TicketRepository) GetAll(ctx context.Context) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets ORDER BY created_at DESC`
	return r.queryTickets(ctx, query)
}

func (r *TicketRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE owner_id = $1 ORDER BY created_at DESC`
	return r.queryTickets(ctx, query, ownerID)
}

// GetByRequester returns tickets on which userID holds a live request,
// whatever its status.
func (r *TicketRepository) GetByRequester(ctx context.Context, userID string) ([]models.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE id IN (SELECT ticket_id FROM ticket_requests WHERE user_id = $1)
		ORDER BY created_at DESC`
	return r.queryTickets(ctx, query, userID)
}

// Save persists a full replacement of the ticket's mutable fields and its
// embedded request list. The version check rejects writes based on a stale
// read: zero rows updated means either the ticket vanished (ErrNotFound) or
// someone else got there first (ErrConflict).
func (r *TicketRepository) Save(ctx context.Context, ticket *models.Ticket) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	update := `
		UPDATE tickets
		SET start_location = $1, end_location = $2, departure_time = $3, arrival_time = $4,
		    price = $5, contact_number = $6, status = $7, version = version + 1, updated_at = NOW()
		WHERE id = $8 AND version = $9`

	res, err := tx.ExecContext(ctx, update,
		ticket.StartLocation,
		ticket.EndLocation,
		ticket.DepartureTime,
		ticket.ArrivalTime,
		ticket.Price,
		ticket.ContactNumber,
		ticket.Status,
		ticket.ID,
		ticket.Version,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM tickets WHERE id = $1)`, ticket.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM ticket_requests WHERE ticket_id = $1`, ticket.ID); err != nil {
		return err
	}

	insert := `
		INSERT INTO ticket_requests (ticket_id, user_id, status, requested_at)
		VALUES ($1, $2, $3, $4)`
	for _, req := range ticket.Requests {
		if _, err := tx.ExecContext(ctx, insert,
			ticket.ID, req.UserID, req.Status, req.RequestedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	ticket.Version++
	return nil
}

func (r *TicketRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TicketRepository) queryTickets(ctx context.Context, query string, args ...interface{}) ([]models.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var t models.Ticket
		err := rows.Scan(
			&t.ID,
			&t.StartLocation,
			&t.EndLocation,
			&t.DepartureTime,
			&t.ArrivalTime,
			&t.Price,
			&t.ContactNumber,
			&t.OwnerID,
			&t.Status,
			&t.Version,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*models.Ticket, len(tickets))
	for i := range tickets {
		refs[i] = &tickets[i]
	}
	if err := r.loadRequests(ctx, refs); err != nil {
		return nil, err
	}
	return tickets, nil
}

// loadRequests fills in the embedded request lists for a batch of tickets in
// one query, keeping insertion order per ticket.
func (r *TicketRepository) loadRequests(ctx context.Context, tickets []*models.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	ids := make([]string, len(tickets))
	byID := make(map[string]*models.Ticket, len(tickets))
	for i, t := range tickets {
		ids[i] = t.ID
		byID[t.ID] = t
	}

	query := `
		SELECT ticket_id, user_id, status, requested_at
		FROM ticket_requests
		WHERE ticket_id = ANY($1)
		ORDER BY requested_at, id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ticketID string
		var req models.Request
		if err := rows.Scan(&ticketID, &req.UserID, &req.Status, &req.RequestedAt); err != nil {
			return err
		}
		if t, ok := byID[ticketID]; ok {
			t.Requests = append(t.Requests, req)
		}
	}
	return rows.Err()
}
