package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tixswap/internal/errors"
	"tixswap/internal/models"
)

func memTicket(id, ownerID string) *models.Ticket {
	return &models.Ticket{
		ID:            id,
		StartLocation: "Aktau",
		EndLocation:   "Atyrau",
		DepartureTime: time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC),
		Price:         120000,
		ContactNumber: "7051112233",
		OwnerID:       ownerID,
		Status:        models.TicketAvailable,
	}
}

func TestMemoryTicketSaveVersionCheck(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	ticket := memTicket("t1", "owner")
	require.NoError(t, repo.Create(ctx, ticket))
	assert.Equal(t, int64(1), ticket.Version)

	first, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)

	first.Status = models.TicketUnderDiscussion
	require.NoError(t, repo.Save(ctx, first))
	assert.Equal(t, int64(2), first.Version)

	// second still holds version 1; its save must lose.
	second.Status = models.TicketSold
	assert.ErrorIs(t, repo.Save(ctx, second), apperrors.ErrConflict)

	current, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.TicketUnderDiscussion, current.Status)
}

func TestMemoryTicketSaveMissing(t *testing.T) {
	repo := NewMemoryTicketRepository()

	err := repo.Save(context.Background(), memTicket("ghost", "owner"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMemoryTicketGetByIDCopies(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	ticket := memTicket("t1", "owner")
	ticket.Requests = []models.Request{{UserID: "u1", Status: models.RequestPending}}
	require.NoError(t, repo.Create(ctx, ticket))

	loaded, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	loaded.Requests[0].Status = models.RequestAccepted
	loaded.Status = models.TicketSold

	// Mutating the returned copy must not leak into the store.
	fresh, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.TicketAvailable, fresh.Status)
	assert.Equal(t, models.RequestPending, fresh.Requests[0].Status)
}

func TestMemoryTicketQueries(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	owned := memTicket("t1", "owner")
	require.NoError(t, repo.Create(ctx, owned))

	other := memTicket("t2", "someone-else")
	other.Requests = []models.Request{{UserID: "owner", Status: models.RequestPending}}
	require.NoError(t, repo.Create(ctx, other))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := repo.GetByOwner(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "t1", mine[0].ID)

	requested, err := repo.GetByRequester(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, requested, 1)
	assert.Equal(t, "t2", requested[0].ID)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryTicketDelete(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, memTicket("t1", "owner")))
	require.NoError(t, repo.Delete(ctx, "t1"))
	assert.ErrorIs(t, repo.Delete(ctx, "t1"), apperrors.ErrNotFound)
}

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &models.User{ID: "u1", Username: "aigerim", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))

	dup := &models.User{ID: "u2", Username: "aigerim", PasswordHash: "y"}
	assert.ErrorIs(t, repo.Create(ctx, dup), apperrors.ErrDuplicateUsername)

	byID, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "aigerim", byID.Username)

	byName, err := repo.GetByUsername(ctx, "aigerim")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "u1", byName.ID)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
