package main

import (
	"context"
	"errors"

	"github.com/pageza/mealdeck/backend/config"
	"github.com/pageza/mealdeck/backend/internal/database"
	"github.com/pageza/mealdeck/backend/internal/logging"
	"github.com/pageza/mealdeck/backend/internal/service"
	"github.com/pageza/mealdeck/backend/internal/types"
)

const password = "testpassword123"

// Test users with a few favorites each, so recommendations have something to
// work from.
var testUsers = []struct {
	name      string
	email     string
	allergies []string
	favorites []types.AddFavoriteRequest
}{
	{
		name:      "John Doe",
		email:     "john.doe@example.com",
		allergies: []string{"peanuts"},
		favorites: []types.AddFavoriteRequest{
			{RecipeID: "52772", Name: "Teriyaki Chicken Casserole", Category: "Chicken"},
			{RecipeID: "52795", Name: "Chicken Handi", Category: "Chicken"},
		},
	},
	{
		name:  "Jane Smith",
		email: "jane.smith@example.com",
		favorites: []types.AddFavoriteRequest{
			{RecipeID: "52959", Name: "Baked salmon with fennel & tomatoes", Category: "Seafood"},
		},
	},
	{
		name:      "Bob Wilson",
		email:     "bob.wilson@example.com",
		allergies: []string{"dairy", "shellfish"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("Migration failed")
	}

	ctx := context.Background()
	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTokenTTL)
	favorites := service.NewFavoritesService(db, nil)
	profiles := service.NewProfileService(db, nil)

	for _, u := range testUsers {
		resp, err := auth.Register(ctx, &types.RegisterRequest{Name: u.name, Email: u.email, Password: password})
		if errors.Is(err, service.ErrUserExists) {
			logging.Info().Str("email", u.email).Msg("User already exists, skipping")
			continue
		}
		if err != nil {
			logging.Error().Err(err).Str("email", u.email).Msg("Failed to create user")
			continue
		}

		if len(u.allergies) > 0 {
			if _, err := profiles.UpdateAllergies(ctx, resp.UserID, u.allergies); err != nil {
				logging.Error().Err(err).Str("email", u.email).Msg("Failed to set allergies")
			}
		}
		for i := range u.favorites {
			if _, err := favorites.Add(ctx, resp.UserID, &u.favorites[i]); err != nil {
				logging.Error().Err(err).Str("email", u.email).Str("recipe_id", u.favorites[i].RecipeID).Msg("Failed to add favorite")
			}
		}
		logging.Info().Str("email", u.email).Int("favorites", len(u.favorites)).Msg("Created test user")
	}

	logging.Info().Str("password", password).Msg("Test users created successfully")
}
