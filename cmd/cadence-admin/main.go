package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/cadencehq/cadence-api/internal/tui"
	"github.com/cadencehq/cadence-api/pkg/client"
	"github.com/cadencehq/cadence-api/pkg/listview"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) != 2 {
		fmt.Println("Usage: cadence-admin <buildings|rooms|departments|courses|batches|timetables>")
		os.Exit(1)
	}
	resource := os.Args[1]

	baseURL := getEnv("CADENCE_URL", "http://localhost:8080")
	username := os.Getenv("CADENCE_USERNAME")
	password := os.Getenv("CADENCE_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("CADENCE_USERNAME and CADENCE_PASSWORD must be set")
	}

	ctx := context.Background()

	api := client.New(baseURL)
	session, err := api.Login(ctx, username, password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	defer func() { _ = api.Logout(context.Background()) }()

	if !session.HasRole("admin", "staff") {
		log.Fatalf("User %s is not an admin or staff member", session.User.Username)
	}

	opts := tui.Options{
		Store:      listview.NewFileStore(cacheDir()),
		ServerMode: os.Getenv("CADENCE_SERVER_PAGING") == "true",
		PageSize:   10,
	}

	var model tea.Model
	switch resource {
	case "buildings":
		model = tui.Buildings(ctx, api, opts)
	case "rooms":
		model = tui.Rooms(ctx, api, opts)
	case "departments":
		model = tui.Departments(ctx, api, opts)
	case "courses":
		model = tui.Courses(ctx, api, opts)
	case "batches":
		model = tui.Batches(ctx, api, opts)
	case "timetables":
		model = tui.Timetables(ctx, api, opts)
	default:
		log.Fatalf("Unknown resource: %s", resource)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("Failed to run TUI: %v", err)
	}
}

func cacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "cadence-admin")
	}
	return filepath.Join(base, "cadence-admin")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
