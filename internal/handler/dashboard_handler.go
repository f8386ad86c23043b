package handler

import (
	"si-prima/internal/berkas"
	"si-prima/internal/middleware"
	"si-prima/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	repo     repository.DashboardRepository
	registry *berkas.Registry
}

func NewDashboardHandler(repo repository.DashboardRepository, registry *berkas.Registry) *DashboardHandler {
	return &DashboardHandler{repo: repo, registry: registry}
}

// GET /admin-dashboard
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	stats, err := h.repo.GetDashboardStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data dashboard: " + err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil statistik",
		"data":    stats,
	})
}

// GET /pegawai-dashboard
func (h *DashboardHandler) Pegawai(c *fiber.Ctx) error {
	pegawai, err := middleware.CurrentSession(c).User(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data pegawai tidak ditemukan"})
	}
	pegawai.BerkasURL = h.registry.Normalize(pegawai.BerkasURL)

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil dashboard",
		"data": fiber.Map{
			"pegawai":       pegawai,
			"jumlah_upload": len(pegawai.BerkasURL),
			"total_jenis":   len(h.registry.Jenis().Labels()),
		},
	})
}

// GET /pensiun-dashboard, hanya baca
func (h *DashboardHandler) Pensiun(c *fiber.Ctx) error {
	pegawai, err := middleware.CurrentSession(c).User(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data pegawai tidak ditemukan"})
	}
	pegawai.BerkasURL = h.registry.Normalize(pegawai.BerkasURL)

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil dashboard",
		"data":    pegawai,
	})
}
