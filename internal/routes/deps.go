package routes

import (
	"time"

	"si-prima/internal/berkas"
	"si-prima/internal/notify"
	"si-prima/internal/session"
	"si-prima/internal/storage"
	"si-prima/internal/usecase"

	"gorm.io/gorm"
)

// Deps adalah objek bersama yang dibuat sekali di main lalu dibagikan ke semua route
type Deps struct {
	DB       *gorm.DB
	Auth     *usecase.AuthUsecase
	Resolver *session.Resolver
	Sessions *session.Manager
	Registry *berkas.Registry
	Bucket   *storage.LocalBucket
	Notifier notify.Notifier
	TokenTTL time.Duration
}
