package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"si-prima/config"
	"si-prima/internal/berkas"
	"si-prima/internal/cache"
	"si-prima/internal/logger"
	"si-prima/internal/notify"
	"si-prima/internal/repository"
	"si-prima/internal/routes"
	"si-prima/internal/session"
	"si-prima/internal/storage"
	"si-prima/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	// 1. Load .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}
	cfg := config.Load()
	logger.InitLogging(cfg.LogFilePath)

	// 2. Database
	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.ErrorLog(ctx, "gagal menyiapkan database: %v", err)
		os.Exit(1)
	}

	// 3. Cache (Redis jika REDIS_ADDR diisi, selain itu in-memory)
	var store cache.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.ErrorLog(ctx, "gagal koneksi ke redis: %v", err)
			os.Exit(1)
		}
		store = cache.NewRedisStore(rdb)
		logger.InfoLog(ctx, "cache memakai redis %s", cfg.RedisAddr)
	} else {
		store = cache.NewMemoryStore()
		logger.WarnLog(ctx, "REDIS_ADDR kosong, cache memakai memori (logout tidak berlaku lintas proses)")
	}

	// 4. Storage & daftar jenis berkas
	bucket, err := storage.NewLocalBucket(cfg.StorageDir, cfg.StorageBucket, cfg.StoragePublicURL)
	if err != nil {
		logger.ErrorLog(ctx, "gagal menyiapkan storage: %v", err)
		os.Exit(1)
	}
	jenis, err := berkas.LoadJenisSet(cfg.BerkasJenisFile)
	if err != nil {
		logger.ErrorLog(ctx, "gagal memuat jenis berkas: %v", err)
		os.Exit(1)
	}

	// 5. Komponen inti
	pegawaiRepo := repository.NewPegawaiRepository(db)
	auth := usecase.NewAuthUsecase(repository.NewAkunRepository(db), store, cfg.JWTSecret, cfg.JWTTTL)
	deps := &routes.Deps{
		DB:       db,
		Auth:     auth,
		Resolver: session.NewResolver(auth, pegawaiRepo),
		Sessions: session.NewManager(store, pegawaiRepo, cfg.SessionCacheTTL),
		Registry: berkas.NewRegistry(pegawaiRepo, bucket, jenis),
		Bucket:   bucket,
		Notifier: notify.NewNotifier(notify.Config{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			User:     cfg.MailUser,
			Password: cfg.MailPassword,
			From:     cfg.MailFrom,
			Admin:    cfg.MailAdmin,
		}),
		TokenTTL: cfg.JWTTTL,
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // upload berkas maksimal 10 MB
	})

	// Middleware Global
	app.Use(cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))
	app.Use(fiberlogger.New())

	routes.SetupAuthRoutes(app, deps)
	routes.SetupDashboardRoutes(app, deps)
	routes.SetupPegawaiRoutes(app, deps)
	routes.SetupBerkasRoutes(app, deps)

	logger.InfoLog(ctx, "server siap di port :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.ErrorLog(ctx, "server berhenti: %v", err)
		os.Exit(1)
	}
}
