package main

import (
	"database/sql"
	"flag"
	"os"

	"labournet-backend/config"
	"labournet-backend/migrations"
	"labournet-backend/pkg/logger"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying")
	steps := flag.Int("steps", 0, "maximum number of migrations to run (0 = all; down defaults to 1)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	logger.Init(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to open database")
	}
	defer db.Close()

	source := &migrate.EmbedFileSystemMigrationSource{FileSystem: migrations.FS, Root: "."}
	migrate.SetTable("schema_migrations")

	direction, limit := migrate.Up, *steps
	if *down {
		direction = migrate.Down
		if limit == 0 {
			limit = 1
		}
	}

	n, err := migrate.ExecMax(db, "postgres", source, direction, limit)
	if err != nil {
		logger.Log.WithError(err).Error("Migration failed")
		os.Exit(1)
	}
	logger.Log.WithField("applied", n).WithField("down", *down).Info("Migrations complete")
}
