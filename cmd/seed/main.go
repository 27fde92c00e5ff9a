package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"tixswap/internal/auth"
	"tixswap/internal/config"
	"tixswap/internal/database"
	"tixswap/internal/logger"
	"tixswap/internal/models"
	"tixswap/internal/repository"
)

var (
	userCount   = flag.Int("users", 5, "Number of demo users to create")
	ticketCount = flag.Int("tickets", 20, "Number of demo tickets to create")
	clear       = flag.Bool("clear", false, "Clear existing tickets and users first")
	dryRun      = flag.Bool("dry-run", false, "Show what would be created without making changes")
)

var routes = [][2]string{
	{"Almaty", "Astana"},
	{"Astana", "Shymkent"},
	{"Almaty", "Karaganda"},
	{"Shymkent", "Aktobe"},
	{"Karaganda", "Pavlodar"},
}

func main() {
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, "text")

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if *dryRun {
		logger.Get().Info("Dry run", "users", *userCount, "tickets", *ticketCount)
		os.Exit(0)
	}

	ctx := context.Background()

	if *clear {
		logger.Get().Info("Clearing existing data...")
		for _, table := range []string{"ticket_activity", "ticket_requests", "tickets", "users"} {
			if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				logger.Fatal("Failed to clear table", "table", table, "error", err)
			}
		}
	}

	repos := repository.NewRepositories(db)
	hasher := auth.NewPasswordHasher(0)

	users := make([]*models.User, 0, *userCount)
	for i := 1; i <= *userCount; i++ {
		hash, err := hasher.Hash(fmt.Sprintf("password%d", i))
		if err != nil {
			logger.Fatal("Failed to hash password", "error", err)
		}

		user := &models.User{
			ID:           uuid.New().String(),
			Username:     fmt.Sprintf("demo%d", i),
			PasswordHash: hash,
		}
		if err := repos.Users.Create(ctx, user); err != nil {
			logger.Fatal("Failed to create user", "username", user.Username, "error", err)
		}
		users = append(users, user)
	}
	logger.Get().Info("Created demo users", "count", len(users))

	created := 0
	for i := 0; i < *ticketCount; i++ {
		owner := users[rand.Intn(len(users))]
		route := routes[rand.Intn(len(routes))]
		departure := time.Now().Add(time.Duration(1+rand.Intn(30*24)) * time.Hour).Truncate(time.Minute)

		ticket := &models.Ticket{
			ID:            uuid.New().String(),
			StartLocation: route[0],
			EndLocation:   route[1],
			DepartureTime: departure,
			ArrivalTime:   departure.Add(time.Duration(2+rand.Intn(10)) * time.Hour),
			Price:         int64(100000 + rand.Intn(900000)), // minor units
			ContactNumber: fmt.Sprintf("7%09d", rand.Intn(1000000000)),
			OwnerID:       owner.ID,
			Status:        models.TicketAvailable,
		}
		if err := repos.Tickets.Create(ctx, ticket); err != nil {
			logger.Fatal("Failed to create ticket", "error", err)
		}
		created++
	}

	logger.Get().Info("Seeding complete", "users", len(users), "tickets", created)
}
