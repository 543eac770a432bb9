package main

import (
	"context"
	"log"
	"time"

	"cv-builder-be/internal/bootstrap"
	"cv-builder-be/internal/config"
	"cv-builder-be/internal/server"
	"cv-builder-be/internal/tracer"
	"cv-builder-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(database.Options{
		DSN:             cfg.Database.Connection,
		LogLevel:        cfg.Database.LogLevel,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Sync Worker...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Sync Worker Error: %v", err)
		}
	}()
	container.SessionService.StartAutoSave(context.Background())
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := container.SessionService.SweepStale(context.Background()); err != nil {
				log.Printf("Background Stale Sweep Error: %v", err)
			}
		}
	}()
	defer container.NavigationService.Cleanup()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
