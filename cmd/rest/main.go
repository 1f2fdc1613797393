package main

import (
	"context"
	"log"

	"kyc-verification-be/internal/bootstrap"
	"kyc-verification-be/internal/config"
	"kyc-verification-be/internal/server"
	"kyc-verification-be/internal/tracer"
	"kyc-verification-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.PublisherService.Close()

	// 4. Start Background Services
	if err := container.NotifierService.Start(context.Background()); err != nil {
		log.Panicf("Unable to start notifier: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
