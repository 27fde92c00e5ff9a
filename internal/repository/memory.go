package repository

import (
	"context"
	"sort"
	"sync"

	apperrors "tixswap/internal/errors"
	"tixswap/internal/models"
)

// MemoryUserRepository and MemoryTicketRepository mirror the SQL stores'
// contracts, version checks included, without a database. They back the
// service-level tests.

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return apperrors.ErrDuplicateUsername
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

type MemoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]models.Ticket
}

func NewMemoryTicketRepository() *MemoryTicketRepository {
	return &MemoryTicketRepository{tickets: make(map[string]models.Ticket)}
}

func copyTicket(t models.Ticket) models.Ticket {
	out := t
	out.Requests = append([]models.Request(nil), t.Requests...)
	return out
}

func (r *MemoryTicketRepository) Create(_ context.Context, ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.Version = 1
	r.tickets[ticket.ID] = copyTicket(*ticket)
	return nil
}

func (r *MemoryTicketRepository) GetByID(_ context.Context, id string) (*models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	out := copyTicket(t)
	return &out, nil
}

func (r *MemoryTicketRepository) GetAll(_ context.Context) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(models.Ticket) bool { return true }), nil
}

func (r *MemoryTicketRepository) GetByOwner(_ context.Context, ownerID string) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t models.Ticket) bool { return t.OwnerID == ownerID }), nil
}

func (r *MemoryTicketRepository) GetByRequester(_ context.Context, userID string) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(t models.Ticket) bool {
		for _, req := range t.Requests {
			if req.UserID == userID {
				return true
			}
		}
		return false
	}), nil
}

func (r *MemoryTicketRepository) Save(_ context.Context, ticket *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.tickets[ticket.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if current.Version != ticket.Version {
		return apperrors.ErrConflict
	}

	ticket.Version++
	r.tickets[ticket.ID] = copyTicket(*ticket)
	return nil
}

func (r *MemoryTicketRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.tickets, id)
	return nil
}

func (r *MemoryTicketRepository) collect(match func(models.Ticket) bool) []models.Ticket {
	var out []models.Ticket
	for _, t := range r.tickets {
		if match(t) {
			out = append(out, copyTicket(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
