package routes

import (
	"strings"

	"si-prima/internal/handler"
	"si-prima/internal/middleware"
	"si-prima/internal/model"
	"si-prima/internal/repository"
	"si-prima/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// StoragePrefix adalah path URL tempat bucket disajikan, harus sama dengan path STORAGE_PUBLIC_URL
const StoragePrefix = "/storage/v1"

func SetupBerkasRoutes(app *fiber.App, deps *Deps) {
	repo := repository.NewPegawaiRepository(deps.DB)
	hdl := handler.NewBerkasHandler(deps.Registry, repo, deps.Sessions)

	adminOnly := middleware.Guard(deps.Resolver, deps.Sessions, model.RoleAdmin)
	pegawaiOnly := middleware.Guard(deps.Resolver, deps.Sessions, model.RolePegawai)

	app.Get("/api/berkas/jenis", hdl.Jenis)

	// File publik di bucket (agar URL berkas bisa dibuka langsung)
	app.Static(StoragePrefix+strings.TrimSuffix(storage.PublicSegment(deps.Bucket.Name()), "/"), deps.Bucket.Dir())

	// Berkas milik sendiri
	mine := app.Group("/api/pegawai/berkas")
	mine.Get("/", pegawaiOnly, hdl.GetMine)
	mine.Post("/:jenis", pegawaiOnly, hdl.UploadMine)
	mine.Put("/:jenis", pegawaiOnly, hdl.ReplaceMine)
	mine.Delete("/:jenis", pegawaiOnly, hdl.DeleteMine)
	mine.Get("/:jenis/download", pegawaiOnly, hdl.DownloadMine)

	// Admin: berkas semua pegawai
	admin := app.Group("/api/admin")
	admin.Get("/berkas", adminOnly, hdl.AdminList)
	admin.Get("/pegawai/:id/berkas", adminOnly, hdl.AdminGet)
	admin.Post("/pegawai/:id/berkas/:jenis", adminOnly, hdl.AdminUpload)
	admin.Delete("/pegawai/:id/berkas/:jenis", adminOnly, hdl.AdminDelete)
}
