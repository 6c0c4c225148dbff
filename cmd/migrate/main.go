package main

import (
	"context"
	"flag"
	"os"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/pkg/logger"
	"inventory/pkg/migrate"
)

func main() {
	command := flag.String("cmd", "up", "goose command: up, down, status, version, redo, reset, up-to, down-to")
	version := flag.String("version", "", "target version for up-to / down-to")
	flag.Parse()

	log := logger.New(logger.Options{ServiceName: "inventory-migrate", Format: "console"})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Database.Driver == config.DriverMemory {
		log.Fatalf("STORAGE_DRIVER=%s has no schema to migrate", cfg.Database.Driver)
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	sqlDB, err := db.DB().DB()
	if err != nil {
		log.Fatalf("failed to get sql db handle: %v", err)
	}

	var args []string
	if *version != "" {
		args = append(args, *version)
	}

	if err := migrate.Run(ctx, sqlDB, db.Dialect(), log, *command, args...); err != nil {
		log.Error(ctx, "migration failed", err)
		db.Close()
		os.Exit(1)
	}
	log.Info(log.WithField(ctx, "cmd", *command), "migration finished")
}
