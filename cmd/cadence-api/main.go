package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"

	"github.com/cadencehq/cadence-api/internal/config"
	"github.com/cadencehq/cadence-api/internal/database"
	"github.com/cadencehq/cadence-api/internal/handlers"
	authmw "github.com/cadencehq/cadence-api/internal/middleware"
	"github.com/cadencehq/cadence-api/internal/models"
	"github.com/cadencehq/cadence-api/internal/scheduler"
	"github.com/cadencehq/cadence-api/internal/services"
	"github.com/cadencehq/cadence-api/internal/sse"
)

func main() {
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

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	buildingService := services.NewBuildingService(db)
	roomService := services.NewRoomService(db)
	departmentService := services.NewDepartmentService(db)
	courseService := services.NewCourseService(db)
	batchService := services.NewBatchService(db)
	timetableService := services.NewTimetableService(db)
	emailService := services.NewEmailService(cfg.SMTP)
	engineClient := scheduler.New(cfg.Scheduler)

	hub := sse.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	buildingHandler := handlers.NewBuildingHandler(buildingService)
	roomHandler := handlers.NewRoomHandler(roomService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	courseHandler := handlers.NewCourseHandler(courseService)
	batchHandler := handlers.NewBatchHandler(batchService)
	timetableHandler := handlers.NewTimetableHandler(
		timetableService, batchService, userService,
		engineClient, emailService, hub, cfg.BaseURL,
	)
	sseHandler := handlers.NewSSEHandler(hub)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	// Catalog reads are open to every authenticated role.
	protected.Get("/buildings/", buildingHandler.List)
	protected.Get("/buildings/:id", buildingHandler.Get)
	protected.Get("/rooms/", roomHandler.List)
	protected.Get("/rooms/:id", roomHandler.Get)
	protected.Get("/departments/", departmentHandler.List)
	protected.Get("/departments/:id", departmentHandler.Get)
	protected.Get("/courses/", courseHandler.List)
	protected.Get("/courses/:id", courseHandler.Get)
	protected.Get("/batches/", batchHandler.List)
	protected.Get("/batches/:id", batchHandler.Get)
	protected.Get("/timetables/", timetableHandler.List)
	protected.Get("/timetables/:id", timetableHandler.Get)

	protected.Get("/events", sseHandler.Connect)
	protected.Post("/sse/:clientId/subscribe/:batchId", sseHandler.Subscribe)
	protected.Post("/sse/:clientId/unsubscribe/:batchId", sseHandler.Unsubscribe)

	// Catalog writes and timetable generation are restricted to admin
	// and staff.
	writer := protected.Group("")
	writer.Use(authmw.RequireRole(models.RoleAdmin, models.RoleStaff))

	writer.Post("/buildings/", buildingHandler.Create)
	writer.Patch("/buildings/:id", buildingHandler.Update)
	writer.Delete("/buildings/:id", buildingHandler.Delete)

	writer.Post("/rooms/", roomHandler.Create)
	writer.Patch("/rooms/:id", roomHandler.Update)
	writer.Delete("/rooms/:id", roomHandler.Delete)

	writer.Post("/departments/", departmentHandler.Create)
	writer.Patch("/departments/:id", departmentHandler.Update)
	writer.Delete("/departments/:id", departmentHandler.Delete)

	writer.Post("/courses/", courseHandler.Create)
	writer.Patch("/courses/:id", courseHandler.Update)
	writer.Delete("/courses/:id", courseHandler.Delete)

	writer.Post("/batches/", batchHandler.Create)
	writer.Patch("/batches/:id", batchHandler.Update)
	writer.Delete("/batches/:id", batchHandler.Delete)

	writer.Post("/timetables/", timetableHandler.Generate)

	// Account registration and timetable review are admin only.
	admin := protected.Group("")
	admin.Use(authmw.RequireRole(models.RoleAdmin))

	admin.Post("/auth/register", authHandler.Register)
	admin.Post("/timetables/:id/review", timetableHandler.Review)
	admin.Delete("/timetables/:id", timetableHandler.Delete)

	// Engine callback, authenticated by shared key rather than JWT.
	engine := api.Group("/internal")
	engine.Use(authmw.CallbackKeyAuth(cfg.Scheduler.CallbackKey))
	engine.Post("/engine/result", timetableHandler.EngineResult)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
