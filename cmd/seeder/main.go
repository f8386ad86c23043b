package main

import (
	"context"
	"fmt"
	"os"

	"si-prima/config"
	"si-prima/internal/database"
	"si-prima/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("Memulai Database Seeding...")

	// Load .env manual karena ini script terpisah
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}
	cfg := config.Load()
	logger.InitLogging(cfg.LogFilePath)
	ctx := context.Background()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.ErrorLog(ctx, "gagal menyiapkan database: %v", err)
		os.Exit(1)
	}

	seeds := database.DefaultSeeds(
		config.GetEnv("SEED_ADMIN_EMAIL", "admin@si-prima.local"),
		config.GetEnv("SEED_ADMIN_PASSWORD", "admin123"),
	)
	if err := database.SeedAll(db, seeds); err != nil {
		logger.ErrorLog(ctx, "seeding gagal: %v", err)
		os.Exit(1)
	}

	logger.InfoLog(ctx, "seeding selesai, %d akun", len(seeds))
}
