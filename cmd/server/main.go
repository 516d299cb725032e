// Package main implements the entry point for the quorum-api board engine.
// It loads configuration, connects to PostgreSQL, runs migrations, and wires
// the content, vote, review, message, and account services together.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kestrelm/quorum-api/internal/redact"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	// A missing .env file is fine; the environment may be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app, err := initializeApp()
	if err != nil {
		// Connection errors can embed the DSN; scrub before logging.
		log.Fatalf("failed to initialize application: %s", redact.Error(err))
	}
	defer app.Close()

	if *migrateCmd != "" {
		if err := app.RunMigrationCommand(*migrateCmd); err != nil {
			log.Fatalf("migration command %q failed: %v", *migrateCmd, err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		log.Fatalf("failed to start application: %s", redact.Error(err))
	}

	<-ctx.Done()
	app.logger.Info("shutting down")
}
