package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hellbingo/cmd"
	"hellbingo/config"
	"hellbingo/database"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to load .env file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	var err error
	subcommand := ""
	if len(os.Args) > 1 {
		subcommand = os.Args[1]
	}

	switch subcommand {
	case "migrate":
		err = handleMigrationCommand()
	case "simulate":
		err = cmd.RunSimulate(ctx, os.Args[2:], os.Stdout)
	case "watch":
		err = cmd.RunWatch(ctx, os.Stdout)
	case "", "play":
		err = cmd.Run(ctx, os.Stdin, os.Stdout)
	default:
		err = fmt.Errorf("unknown command %q (usage: hellbingo [play|simulate|watch|migrate])", subcommand)
	}

	if err != nil {
		log.WithError(err).Fatal("Application error")
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: hellbingo migrate [up|down|status] [args...]")
	}

	cfg := config.Get()
	cmd.ConfigureLogging(cfg)
	if !cfg.ArchiveEnabled() {
		return fmt.Errorf("DATABASE_URL is not set")
	}
	databaseURL := cfg.GetDatabaseURL()

	switch os.Args[2] {
	case "up":
		return database.MigrateUp(databaseURL)
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(databaseURL, steps)
	case "status":
		return database.MigrateStatus(databaseURL)
	default:
		return fmt.Errorf("unknown migration command: %s", os.Args[2])
	}
}
