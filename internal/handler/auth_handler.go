package handler

import (
	"context"
	"strings"
	"time"

	"si-prima/internal/logger"
	"si-prima/internal/middleware"
	"si-prima/internal/model"
	"si-prima/internal/notify"
	"si-prima/internal/repository"
	"si-prima/internal/session"
	"si-prima/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type Authenticator interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]string) (*usecase.Principal, error)
	SignIn(ctx context.Context, email, password string) (string, *usecase.Principal, error)
	GetUser(ctx context.Context, token string) (*usecase.Principal, error)
	SignOut(ctx context.Context, token string) error
	DeleteAccount(ctx context.Context, email string) error
}

type AuthHandler struct {
	auth     Authenticator
	repo     repository.PegawaiRepository
	sessions *session.Manager
	notifier notify.Notifier
	tokenTTL time.Duration
}

func NewAuthHandler(auth Authenticator, repo repository.PegawaiRepository, sessions *session.Manager, notifier notify.Notifier, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, repo: repo, sessions: sessions, notifier: notifier, tokenTTL: tokenTTL}
}

type RegisterRequest struct {
	Nama     string `json:"nama"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	req.Nama = strings.TrimSpace(req.Nama)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Nama == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nama, email, dan password wajib diisi"})
	}

	// 1. Email tidak boleh sudah ada di tabel pegawai
	existing, err := h.repo.FindAllByEmail(ctx, req.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa email: " + err.Error()})
	}
	if len(existing) > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email sudah terdaftar"})
	}

	// 2. Buat akun login
	principal, err := h.auth.SignUp(ctx, req.Email, req.Password, map[string]string{
		"nama": req.Nama,
		"role": model.RolePegawai,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTerdaftar):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email sudah terdaftar"})
		case errors.Is(err, usecase.ErrPasswordPendek):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password minimal 6 karakter"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mendaftar: " + err.Error()})
	}

	// 3. Buat data pegawai dengan berkas kosong
	pegawai := model.Pegawai{
		Nama:      req.Nama,
		Email:     principal.Email,
		Role:      model.RolePegawai,
		BerkasURL: model.BerkasMap{},
	}
	if err := h.repo.Create(ctx, &pegawai); err != nil {
		// akun tanpa baris pegawai tidak bisa login maupun daftar ulang, jadi dibatalkan
		if delErr := h.auth.DeleteAccount(ctx, principal.Email); delErr != nil {
			logger.ErrorLog(ctx, "akun %s tertinggal tanpa data pegawai: %v", principal.Email, delErr)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan data pegawai, hubungi admin: " + err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan data pegawai: " + err.Error()})
	}

	h.notifier.PegawaiTerdaftar(ctx, pegawai.Nama, pegawai.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registrasi berhasil, silakan login",
		"data":    pegawai,
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}

	// 1. Cek kredensial
	token, principal, err := h.auth.SignIn(ctx, req.Email, req.Password)
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email atau password salah"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal login: " + err.Error()})
	}

	// 2. Ambil data pegawai (baris pertama jika ada duplikat)
	rows, err := h.repo.FindAllByEmail(ctx, principal.Email)
	if err != nil {
		h.revoke(ctx, token)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data pegawai: " + err.Error()})
	}
	if len(rows) == 0 {
		h.revoke(ctx, token)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data pegawai tidak ditemukan"})
	}
	pegawai := rows[0]
	if strings.TrimSpace(pegawai.Role) == "" {
		h.revoke(ctx, token)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Role pegawai belum diatur, hubungi admin"})
	}

	// 3. Simpan salinan data pegawai untuk sesi ini
	identity := &session.Identity{Role: pegawai.Role, Email: principal.Email}
	if _, err := h.sessions.For(identity).Refresh(ctx); err != nil {
		h.revoke(ctx, token)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan sesi: " + err.Error()})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"message":  "Login berhasil",
		"token":    token,
		"data":     pegawai,
		"redirect": model.HomePath(pegawai.Role),
	})
}

func (h *AuthHandler) revoke(ctx context.Context, token string) {
	_ = h.auth.SignOut(ctx, token)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()
	token := middleware.BearerToken(c)

	// Salinan data user dihapus dulu selagi token masih bisa dibaca
	if principal, err := h.auth.GetUser(ctx, token); err == nil {
		_ = h.sessions.For(&session.Identity{Email: principal.Email}).Clear(ctx)
	}
	if err := h.auth.SignOut(ctx, token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal logout: " + err.Error()})
	}

	c.ClearCookie(middleware.TokenCookie)
	return c.JSON(fiber.Map{"message": "Logout berhasil", "redirect": model.LoginPath})
}
