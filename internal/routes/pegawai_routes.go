package routes

import (
	"si-prima/internal/handler"
	"si-prima/internal/middleware"
	"si-prima/internal/model"
	"si-prima/internal/repository"

	"github.com/gofiber/fiber/v2"
)

func SetupPegawaiRoutes(app *fiber.App, deps *Deps) {
	repo := repository.NewPegawaiRepository(deps.DB)
	hdl := handler.NewPegawaiHandler(repo, deps.Sessions, deps.Registry)

	// Guard dipasang per route agar prefix /api/admin tidak dijaga dua kali
	adminOnly := middleware.Guard(deps.Resolver, deps.Sessions, model.RoleAdmin)
	pegawaiOnly := middleware.Guard(deps.Resolver, deps.Sessions, model.RolePegawai)

	// Admin Routes (Kelola Pegawai)
	admin := app.Group("/api/admin/pegawai")
	admin.Get("/", adminOnly, hdl.GetAll)
	admin.Get("/export", adminOnly, hdl.Export) // harus sebelum /:id
	admin.Get("/:id", adminOnly, hdl.GetByID)
	admin.Post("/", adminOnly, hdl.Create)
	admin.Put("/:id", adminOnly, hdl.Update)
	admin.Delete("/:id", adminOnly, hdl.Delete)

	// Profil milik sendiri
	api := app.Group("/api/pegawai")
	api.Get("/profil", pegawaiOnly, hdl.GetProfil)
	api.Put("/profil", pegawaiOnly, hdl.UpdateProfil)

	// Profil baca-saja untuk pegawai aktif maupun pensiun
	loggedIn := middleware.Guard(deps.Resolver, deps.Sessions, "")
	app.Get("/api/profil", loggedIn, middleware.Role(model.RolePegawai, model.RolePensiun), hdl.GetProfil)
}
