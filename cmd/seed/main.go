package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"tour-booking-api/internal/config"
	"tour-booking-api/internal/database"
	"tour-booking-api/internal/logger"
	"tour-booking-api/internal/tour/model"
	"tour-booking-api/internal/tour/repository"

	"go.uber.org/zap"
)

// Development seed tool: loads the sample catalogue into the tours table,
// or wipes it.
func main() {
	importData := flag.Bool("import", false, "import dev-data/tours.json into the database")
	deleteData := flag.Bool("delete", false, "delete all tours from the database")
	dataFile := flag.String("file", "dev-data/tours.json", "path to the seed data file")
	flag.Parse()

	if *importData == *deleteData {
		os.Stderr.WriteString("usage: seed -import | -delete\n")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx := context.Background()
	repo := repository.NewRepository(db)

	if *deleteData {
		if err := db.DB.WithContext(ctx).Exec("DELETE FROM tours").Error; err != nil {
			logger.Fatal("Failed to delete tours", zap.Error(err))
		}
		logger.Info("All tours deleted")
		return
	}

	raw, err := os.ReadFile(*dataFile)
	if err != nil {
		logger.Fatal("Failed to read seed file", zap.String("file", *dataFile), zap.Error(err))
	}

	var tours []model.Tour
	if err := json.Unmarshal(raw, &tours); err != nil {
		logger.Fatal("Failed to parse seed file", zap.Error(err))
	}

	for i := range tours {
		if err := repo.Create(ctx, &tours[i]); err != nil {
			logger.Fatal("Failed to insert tour",
				zap.String("name", tours[i].Name),
				zap.Error(err),
			)
		}
	}

	logger.Info("Seed data imported", zap.Int("tours", len(tours)))
}
