package routes

import (
	"si-prima/internal/handler"
	"si-prima/internal/middleware"
	"si-prima/internal/model"
	"si-prima/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes mendaftarkan halaman awal tiap role
func SetupDashboardRoutes(app *fiber.App, deps *Deps) {
	// total berkas hanya menghitung label yang dikenal
	repo := repository.NewDashboardRepository(deps.DB, func(m model.BerkasMap) int {
		return len(deps.Registry.Normalize(m))
	})
	hdl := handler.NewDashboardHandler(repo, deps.Registry)

	app.Get(model.AdminHomePath, middleware.Guard(deps.Resolver, deps.Sessions, model.RoleAdmin), hdl.Admin)
	app.Get(model.PegawaiHomePath, middleware.Guard(deps.Resolver, deps.Sessions, model.RolePegawai), hdl.Pegawai)
	app.Get(model.PensiunHomePath, middleware.Guard(deps.Resolver, deps.Sessions, model.RolePensiun), hdl.Pensiun)
}
