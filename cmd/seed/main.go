// Seeds a local database with one account per role plus a studio, a room,
// and a couple of equipment items, so the API is usable right after start.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"studioreserve/internal/config"
	"studioreserve/internal/database"
	"studioreserve/internal/domain"
	"studioreserve/internal/repository"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	studios := repository.NewStudioRepository(db)
	rooms := repository.NewRoomRepository(db)
	equipment := repository.NewEquipmentRepository(db)

	seedUser := func(email, name, phone string, role domain.UserRole) *domain.User {
		if existing, err := users.GetByEmail(ctx, email); err == nil {
			log.Info().Str("email", email).Msg("user already seeded")
			return existing
		}
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cfg.BcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash password")
		}
		u := &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			Name:         name,
			Phone:        phone,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal().Err(err).Str("email", email).Msg("failed to seed user")
		}
		log.Info().Str("email", email).Str("role", string(role)).Msg("seeded user")
		return u
	}

	seedUser("admin@studioreserve.local", "Admin", "+10000000001", domain.RoleAdmin)
	owner := seedUser("owner@studioreserve.local", "Studio Owner", "+10000000002", domain.RoleStudioOwner)
	seedUser("photographer@studioreserve.local", "Photographer", "+10000000003", domain.RolePhotographer)

	owned, err := studios.ListByOwner(ctx, owner.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list studios")
	}
	if len(owned) > 0 {
		log.Info().Msg("catalog already seeded")
		return
	}

	studio := &domain.Studio{
		OwnerID:     owner.ID,
		Name:        "Daylight Studio",
		Description: "Natural-light loft with a cyclorama wall",
		Address:     "12 Panfilov St",
		City:        "Almaty",
	}
	if err := studios.Create(ctx, studio); err != nil {
		log.Fatal().Err(err).Msg("failed to seed studio")
	}

	room := &domain.Room{
		StudioID:    studio.ID,
		Name:        "Main Hall",
		Description: "80 m2, white cyclorama",
		HourlyPrice: 100000,
		DailyPrice:  700000,
		IsActive:    true,
	}
	if err := rooms.Create(ctx, room); err != nil {
		log.Fatal().Err(err).Msg("failed to seed room")
	}

	for _, e := range []struct {
		name, brand, category string
		price                 int64
	}{
		{"Speedlight Kit", "Godox", "lighting", 15000},
		{"85mm f/1.4 Lens", "Sigma", "optics", 20000},
	} {
		item := &domain.EquipmentItem{
			StudioID:    studio.ID,
			Name:        e.name,
			Brand:       e.brand,
			Category:    e.category,
			Condition:   "good",
			RentalPrice: e.price,
			ScanCode:    uuid.NewString(),
			Status:      domain.EquipmentAvailable,
		}
		if err := equipment.Create(ctx, item); err != nil {
			log.Fatal().Err(err).Str("name", e.name).Msg("failed to seed equipment")
		}
	}

	log.Info().Int64("studio_id", studio.ID).Int64("room_id", room.ID).Msg("seed complete")
}
