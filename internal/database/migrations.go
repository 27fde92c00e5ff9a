package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createUsersTable,
		createTicketsTable,
		createTicketRequestsTable,
		createTicketActivityTable,
		createTicketsOwnerIndex,
		createRequestsUserIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username VARCHAR(100) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createTicketsTable = `
CREATE TABLE IF NOT EXISTS tickets (
    id UUID PRIMARY KEY,
    start_location VARCHAR(255) NOT NULL,
    end_location VARCHAR(255) NOT NULL,
    departure_time TIMESTAMP NOT NULL,
    arrival_time TIMESTAMP NOT NULL,
    price BIGINT NOT NULL,
    contact_number VARCHAR(10) NOT NULL,
    owner_id UUID NOT NULL REFERENCES users(id),
    status VARCHAR(20) NOT NULL DEFAULT 'available',
    version BIGINT NOT NULL DEFAULT 1,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW(),

    CHECK (price >= 0),
    CHECK (status IN ('available', 'under_discussion', 'sold'))
);`

const createTicketRequestsTable = `
CREATE TABLE IF NOT EXISTS ticket_requests (
    id SERIAL PRIMARY KEY,
    ticket_id UUID NOT NULL REFERENCES tickets(id) ON DELETE CASCADE,
    user_id UUID NOT NULL REFERENCES users(id),
    status VARCHAR(10) NOT NULL DEFAULT 'pending',
    requested_at TIMESTAMP NOT NULL DEFAULT NOW(),

    UNIQUE(ticket_id, user_id),
    CHECK (status IN ('pending', 'accepted', 'rejected'))
);`

const createTicketActivityTable = `
CREATE TABLE IF NOT EXISTS ticket_activity (
    id SERIAL PRIMARY KEY,
    ticket_id UUID NOT NULL,
    actor_id UUID,
    action VARCHAR(40) NOT NULL,
    detail TEXT,
    occurred_at TIMESTAMP NOT NULL DEFAULT NOW()
);`

const createTicketsOwnerIndex = `
CREATE INDEX IF NOT EXISTS tickets_owner_id_idx ON tickets (owner_id);`

const createRequestsUserIndex = `
CREATE INDEX IF NOT EXISTS ticket_requests_user_id_idx ON ticket_requests (user_id);`
