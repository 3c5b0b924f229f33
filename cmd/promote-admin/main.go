package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/cadencehq/cadence-api/internal/config"
	"github.com/cadencehq/cadence-api/internal/database"
	"github.com/cadencehq/cadence-api/internal/models"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: promote-admin <username>")
		os.Exit(1)
	}

	username := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	result, err := db.Pool.Exec(ctx, `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE username = $2
	`, models.RoleAdmin, username)
	if err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if result.RowsAffected() == 0 {
		log.Fatalf("No user found with username: %s", username)
	}

	fmt.Printf("Successfully promoted %s to admin\n", username)
}
