package middleware

import (
	"si-prima/internal/model"
	"si-prima/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Role dipakai di belakang Guard untuk endpoint yang boleh diakses beberapa role.
// Berbeda dengan Guard, penolakan di sini berupa 403 JSON, bukan redirect.
func Role(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Ambil identitas dari context (diset oleh Guard)
		identity, ok := c.Locals(LocalIdentity).(*session.Identity)
		if !ok || identity == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: Role tidak valid"})
		}

		for _, role := range allowedRoles {
			if model.SameRole(role, identity.Role) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Akses ditolak: role " + identity.Role + " tidak diizinkan"})
	}
}
