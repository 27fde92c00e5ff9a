package repository

import (
	"context"

	"tixswap/internal/database"
	"tixswap/internal/models"
)

type ActivityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Insert(ctx context.Context, activity *models.TicketActivity) error {
	query := `
		INSERT INTO ticket_activity (ticket_id, actor_id, action, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		activity.TicketID,
		activity.ActorID,
		activity.Action,
		activity.Detail,
		activity.OccurredAt,
	).Scan(&activity.ID)
}

func (r *ActivityRepository) GetByTicket(ctx context.Context, ticketID string) ([]models.TicketActivity, error) {
	query := `
		SELECT id, ticket_id, actor_id, action, detail, occurred_at
		FROM ticket_activity
		WHERE ticket_id = $1
		ORDER BY occurred_at`

	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.TicketActivity
	for rows.Next() {
		var a models.TicketActivity
		if err := rows.Scan(&a.ID, &a.TicketID, &a.ActorID, &a.Action, &a.Detail, &a.OccurredAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
