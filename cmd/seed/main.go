package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/logger"
	"blogapi/internal/repository"
)

// defaultCategories are seeded when no names are given on the command line.
var defaultCategories = []string{"Technology", "Lifestyle", "Travel", "Food", "Health"}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("starting seed script")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close(gormDB) }()

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	names := categoryNames(os.Args[1:])
	created, existing, err := seedCategories(context.Background(), repository.NewCategoryRepository(gormDB), names)
	if err != nil {
		zlog.Fatal("failed to seed categories", zap.Error(err))
	}

	zlog.Info("seed completed",
		zap.Int("created", created),
		zap.Int("existing", existing),
		zap.Int("total", created+existing))
}

// categoryNames trims args and falls back to defaultCategories when none remain.
func categoryNames(args []string) []string {
	names := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			names = append(names, a)
		}
	}
	if len(names) == 0 {
		return defaultCategories
	}
	return names
}

// seedCategories creates the missing categories. Running it twice is a no-op.
func seedCategories(ctx context.Context, repo repository.CategoryRepository, names []string) (created int, existing int, err error) {
	for _, name := range names {
		_, isNew, err := repo.FindOrCreate(ctx, name)
		if err != nil {
			return created, existing, fmt.Errorf("error seeding category %q: %w", name, err)
		}
		if isNew {
			created++
		} else {
			existing++
		}
	}
	return created, existing, nil
}
