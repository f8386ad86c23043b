package routes

import (
	"si-prima/internal/handler"
	"si-prima/internal/repository"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, deps *Deps) {
	repo := repository.NewPegawaiRepository(deps.DB)
	hdl := handler.NewAuthHandler(deps.Auth, repo, deps.Sessions, deps.Notifier, deps.TokenTTL)

	api := app.Group("/api/auth")
	api.Post("/register", hdl.Register)
	api.Post("/login", hdl.Login)
	api.Post("/logout", hdl.Logout)
}
