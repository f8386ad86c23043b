package handler

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"si-prima/internal/berkas"
	"si-prima/internal/export"
	"si-prima/internal/logger"
	"si-prima/internal/middleware"
	"si-prima/internal/model"
	"si-prima/internal/repository"
	"si-prima/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PegawaiHandler struct {
	repo     repository.PegawaiRepository
	sessions *session.Manager
	registry *berkas.Registry
}

func NewPegawaiHandler(repo repository.PegawaiRepository, sessions *session.Manager, registry *berkas.Registry) *PegawaiHandler {
	return &PegawaiHandler{repo: repo, sessions: sessions, registry: registry}
}

// PegawaiRequest dipakai admin untuk tambah/ubah pegawai
type PegawaiRequest struct {
	Nama               string `json:"nama"`
	Email              string `json:"email"`
	NIP                string `json:"nip"`
	Jabatan            string `json:"jabatan"`
	Pangkat            string `json:"pangkat"`
	PendidikanTerakhir string `json:"pendidikan_terakhir"`
	TempatLahir        string `json:"tempat_lahir"`
	TanggalLahir       string `json:"tanggal_lahir"`
	TMTCPNS            string `json:"tmt_cpns"`
	TMTPNS             string `json:"tmt_pns"`
	JenisKelamin       string `json:"jenis_kelamin"`
	Role               string `json:"role"`
}

// ProfilRequest: field yang boleh diubah pegawai sendiri (email & role tidak)
type ProfilRequest struct {
	Nama               string `json:"nama"`
	NIP                string `json:"nip"`
	Jabatan            string `json:"jabatan"`
	Pangkat            string `json:"pangkat"`
	PendidikanTerakhir string `json:"pendidikan_terakhir"`
	TempatLahir        string `json:"tempat_lahir"`
	TanggalLahir       string `json:"tanggal_lahir"`
	TMTCPNS            string `json:"tmt_cpns"`
	TMTPNS             string `json:"tmt_pns"`
	JenisKelamin       string `json:"jenis_kelamin"`
}

func validTanggal(values ...string) bool {
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return false
		}
	}
	return true
}

func (r *PegawaiRequest) validate() string {
	if strings.TrimSpace(r.Nama) == "" || strings.TrimSpace(r.Email) == "" {
		return "Nama dan email wajib diisi"
	}
	if r.Role != "" {
		if _, ok := model.CanonicalRole(r.Role); !ok {
			return "Role harus admin, pegawai, atau pensiun"
		}
	}
	if !validTanggal(r.TanggalLahir, r.TMTCPNS, r.TMTPNS) {
		return "Format tanggal harus YYYY-MM-DD"
	}
	return ""
}

func (r *PegawaiRequest) applyTo(p *model.Pegawai) {
	p.Nama = strings.TrimSpace(r.Nama)
	p.Email = strings.ToLower(strings.TrimSpace(r.Email))
	p.NIP = strings.TrimSpace(r.NIP)
	p.Jabatan = r.Jabatan
	p.Pangkat = r.Pangkat
	p.PendidikanTerakhir = r.PendidikanTerakhir
	p.TempatLahir = r.TempatLahir
	p.TanggalLahir = r.TanggalLahir
	p.TMTCPNS = r.TMTCPNS
	p.TMTPNS = r.TMTPNS
	p.JenisKelamin = r.JenisKelamin
	if r.Role != "" {
		p.Role = r.Role
	}
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GET /api/admin/pegawai?search=&role=&jabatan=&jenis_kelamin=
func (h *PegawaiHandler) GetAll(c *fiber.Ctx) error {
	filter := repository.PegawaiFilter{
		Search:       c.Query("search"),
		Role:         c.Query("role"),
		Jabatan:      c.Query("jabatan"),
		JenisKelamin: c.Query("jenis_kelamin"),
	}

	list, err := h.repo.GetAll(c.UserContext(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data pegawai: " + err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil data pegawai",
		"data":    list,
	})
}

func (h *PegawaiHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	pegawai, err := h.repo.FindByID(c.UserContext(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pegawai tidak ditemukan"})
	}
	pegawai.BerkasURL = h.registry.Normalize(pegawai.BerkasURL)

	return c.JSON(fiber.Map{"data": pegawai})
}

func (h *PegawaiHandler) Create(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req PegawaiRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	existing, err := h.repo.FindAllByEmail(ctx, req.Email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa email: " + err.Error()})
	}
	if len(existing) > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email sudah terdaftar"})
	}

	pegawai := model.Pegawai{Role: model.RolePegawai, BerkasURL: model.BerkasMap{}}
	req.applyTo(&pegawai)

	if err := h.repo.Create(ctx, &pegawai); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menambah pegawai: " + err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Pegawai berhasil ditambahkan",
		"data":    pegawai,
	})
}

func (h *PegawaiHandler) Update(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	var req PegawaiRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format data salah"})
	}
	if msg := req.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	// 1. Ambil data lama
	pegawai, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pegawai tidak ditemukan"})
	}
	oldEmail := pegawai.Email

	// 2. Email baru tidak boleh milik pegawai lain
	if !strings.EqualFold(oldEmail, strings.TrimSpace(req.Email)) {
		others, err := h.repo.FindAllByEmail(ctx, req.Email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa email: " + err.Error()})
		}
		if len(others) > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email sudah dipakai pegawai lain"})
		}
	}

	// 3. Simpan
	req.applyTo(pegawai)
	if err := h.repo.Update(ctx, pegawai); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal update pegawai: " + err.Error()})
	}

	h.invalidate(c, oldEmail, pegawai.Email)

	return c.JSON(fiber.Map{
		"message": "Data pegawai berhasil diupdate",
		"data":    pegawai,
	})
}

func (h *PegawaiHandler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	}

	pegawai, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pegawai tidak ditemukan"})
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pegawai tidak ditemukan"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus pegawai: " + err.Error()})
	}

	h.invalidate(c, pegawai.Email)

	return c.JSON(fiber.Map{"message": "Pegawai berhasil dihapus"})
}

func (h *PegawaiHandler) invalidate(c *fiber.Ctx, emails ...string) {
	for _, email := range emails {
		if err := h.sessions.Invalidate(c.UserContext(), email); err != nil {
			logger.WarnLog(c.UserContext(), "gagal menghapus cache user %s: %v", email, err)
		}
	}
}

// GET /api/admin/pegawai/export, filter sama dengan GetAll
func (h *PegawaiHandler) Export(c *fiber.Ctx) error {
	filter := repository.PegawaiFilter{
		Search:       c.Query("search"),
		Role:         c.Query("role"),
		Jabatan:      c.Query("jabatan"),
		JenisKelamin: c.Query("jenis_kelamin"),
	}
	list, err := h.repo.GetAll(c.UserContext(), filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data pegawai: " + err.Error()})
	}

	var buf bytes.Buffer
	count := func(m model.BerkasMap) int { return len(h.registry.Normalize(m)) }
	if err := export.WritePegawai(&buf, list, count); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat file excel: " + err.Error()})
	}

	filename := "data_pegawai_" + time.Now().Format("20060102") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(filename)
	return c.Send(buf.Bytes())
}

// --- Profil milik pegawai yang sedang login ---

func (h *PegawaiHandler) GetProfil(c *fiber.Ctx) error {
	pegawai, err := middleware.CurrentSession(c).User(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data pegawai tidak ditemukan"})
	}
	pegawai.BerkasURL = h.registry.Normalize(pegawai.BerkasURL)

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil profil",
		"data":    pegawai,
	})
}

func (h *PegawaiHandler) UpdateProfil(c *fiber.Ctx) error {
	ctx := c.UserContext()
	sess := middleware.CurrentSession(c)

	var req ProfilRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Data tidak valid"})
	}
	if strings.TrimSpace(req.Nama) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Nama wajib diisi"})
	}
	if !validTanggal(req.TanggalLahir, req.TMTCPNS, req.TMTPNS) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format tanggal harus YYYY-MM-DD"})
	}

	// Selalu baca dari database, bukan dari cache sesi
	pegawai, err := h.repo.FindByEmail(ctx, sess.Identity().Email)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Data pegawai tidak ditemukan"})
	}

	pegawai.Nama = strings.TrimSpace(req.Nama)
	pegawai.NIP = strings.TrimSpace(req.NIP)
	pegawai.Jabatan = req.Jabatan
	pegawai.Pangkat = req.Pangkat
	pegawai.PendidikanTerakhir = req.PendidikanTerakhir
	pegawai.TempatLahir = req.TempatLahir
	pegawai.TanggalLahir = req.TanggalLahir
	pegawai.TMTCPNS = req.TMTCPNS
	pegawai.TMTPNS = req.TMTPNS
	pegawai.JenisKelamin = req.JenisKelamin

	if err := h.repo.Update(ctx, pegawai); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal update profil: " + err.Error()})
	}

	updated, err := sess.Refresh(ctx)
	if err != nil {
		logger.WarnLog(ctx, "gagal memperbarui sesi %s: %v", sess.Identity().Email, err)
		updated = pegawai
	}

	return c.JSON(fiber.Map{
		"message": "Profil berhasil diupdate",
		"data":    updated,
	})
}
