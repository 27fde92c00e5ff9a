package repository

import (
	"tixswap/internal/database"
)

type Repositories struct {
	Users    *UserRepository
	Tickets  *TicketRepository
	Activity *ActivityRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		Tickets:  NewTicketRepository(db),
		Activity: NewActivityRepository(db),
	}
}
