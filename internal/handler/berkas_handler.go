package handler

import (
	"context"
	"net/url"
	"strings"

	"si-prima/internal/berkas"
	"si-prima/internal/logger"
	"si-prima/internal/middleware"
	"si-prima/internal/model"
	"si-prima/internal/repository"
	"si-prima/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type BerkasHandler struct {
	registry *berkas.Registry
	repo     repository.PegawaiRepository
	sessions *session.Manager
}

func NewBerkasHandler(registry *berkas.Registry, repo repository.PegawaiRepository, sessions *session.Manager) *BerkasHandler {
	return &BerkasHandler{registry: registry, repo: repo, sessions: sessions}
}

// berkasError memetakan error registry ke status HTTP
func berkasError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errIDTidakValid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID tidak valid"})
	case errors.Is(err, berkas.ErrJenisTidakDikenal):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Jenis berkas tidak dikenal"})
	case errors.Is(err, berkas.ErrFileKosong):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File wajib diisi"})
	case errors.Is(err, berkas.ErrBerkasNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Berkas belum diunggah"})
	case errors.Is(err, berkas.ErrInvalidPath):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Path file tidak valid: " + err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pegawai tidak ditemukan"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memproses berkas: " + err.Error()})
}

// jenisParam: label berisi spasi ("SK CPNS") dikirim ter-encode di path
func jenisParam(c *fiber.Ctx) (string, bool) {
	jenis, err := url.PathUnescape(c.Params("jenis"))
	if err != nil || jenis == "" {
		return "", false
	}
	return jenis, true
}

func readFile(c *fiber.Ctx) (berkas.File, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return berkas.File{}, func() {}, berkas.ErrFileKosong
	}
	f, err := fh.Open()
	if err != nil {
		return berkas.File{}, func() {}, errors.Wrap(err, "gagal membaca file")
	}
	file := berkas.File{
		Name:        fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Body:        f,
	}
	return file, func() { f.Close() }, nil
}

type berkasView struct {
	Berkas       model.BerkasMap `json:"berkas"`
	Jenis        []string        `json:"jenis"`
	JumlahUpload int             `json:"jumlah_upload"`
	TotalJenis   int             `json:"total_jenis"`
}

func (h *BerkasHandler) view(m model.BerkasMap) berkasView {
	labels := h.registry.Jenis().Labels()
	return berkasView{Berkas: m, Jenis: labels, JumlahUpload: len(m), TotalJenis: len(labels)}
}

// GET /api/berkas/jenis
func (h *BerkasHandler) Jenis(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.registry.Jenis().Labels()})
}

// --- Berkas milik sendiri ---

func (h *BerkasHandler) ownerEmail(c *fiber.Ctx) string {
	return middleware.CurrentIdentity(c).Email
}

func (h *BerkasHandler) refreshSession(c *fiber.Ctx) {
	if _, err := middleware.CurrentSession(c).Refresh(c.UserContext()); err != nil {
		logger.WarnLog(c.UserContext(), "gagal memperbarui sesi: %v", err)
	}
}

func (h *BerkasHandler) GetMine(c *fiber.Ctx) error {
	m, err := h.registry.List(c.UserContext(), h.ownerEmail(c))
	if err != nil {
		return berkasError(c, err)
	}
	return c.JSON(fiber.Map{"data": h.view(m)})
}

func (h *BerkasHandler) UploadMine(c *fiber.Ctx) error {
	return h.upload(c, h.ownerEmail(c), h.registry.Upload, "Berkas berhasil diunggah")
}

func (h *BerkasHandler) ReplaceMine(c *fiber.Ctx) error {
	return h.upload(c, h.ownerEmail(c), h.registry.Replace, "Berkas berhasil diperbarui")
}

type uploadFunc func(ctx context.Context, owner, label string, file berkas.File) (model.BerkasMap, error)

func (h *BerkasHandler) upload(c *fiber.Ctx, owner string, do uploadFunc, message string) error {
	jenis, ok := jenisParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Jenis berkas tidak valid"})
	}
	file, closeFile, err := readFile(c)
	if err != nil {
		return berkasError(c, err)
	}
	defer closeFile()

	m, err := do(c.UserContext(), owner, jenis, file)
	if err != nil {
		return berkasError(c, err)
	}
	h.afterChange(c, owner)

	return c.JSON(fiber.Map{"message": message, "data": h.view(m)})
}

func (h *BerkasHandler) DeleteMine(c *fiber.Ctx) error {
	return h.remove(c, h.ownerEmail(c))
}

func (h *BerkasHandler) remove(c *fiber.Ctx, owner string) error {
	jenis, ok := jenisParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Jenis berkas tidak valid"})
	}

	m, err := h.registry.Remove(c.UserContext(), owner, jenis)
	if err != nil {
		return berkasError(c, err)
	}
	h.afterChange(c, owner)

	return c.JSON(fiber.Map{"message": "Berkas berhasil dihapus", "data": h.view(m)})
}

// afterChange menyegarkan salinan data user: milik sendiri di-refresh, milik orang lain dihapus.
func (h *BerkasHandler) afterChange(c *fiber.Ctx, owner string) {
	if id := middleware.CurrentIdentity(c); id != nil && strings.EqualFold(id.Email, owner) {
		h.refreshSession(c)
		return
	}
	if err := h.sessions.Invalidate(c.UserContext(), owner); err != nil {
		logger.WarnLog(c.UserContext(), "gagal menghapus cache user %s: %v", owner, err)
	}
}

// GET /api/pegawai/berkas/:jenis/download
func (h *BerkasHandler) DownloadMine(c *fiber.Ctx) error {
	jenis, ok := jenisParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Jenis berkas tidak valid"})
	}
	m, err := h.registry.List(c.UserContext(), h.ownerEmail(c))
	if err != nil {
		return berkasError(c, err)
	}
	entry, ok := m[jenis]
	if !ok {
		return berkasError(c, berkas.ErrBerkasNotFound)
	}
	return c.Redirect(entry.URL, fiber.StatusFound)
}

// --- Admin ---

type pegawaiBerkas struct {
	ID     uint            `json:"id"`
	Nama   string          `json:"nama"`
	NIP    string          `json:"nip"`
	Email  string          `json:"email"`
	Berkas model.BerkasMap `json:"berkas"`
	Jumlah int             `json:"jumlah"`
}

// GET /api/admin/berkas?search=
func (h *BerkasHandler) AdminList(c *fiber.Ctx) error {
	list, err := h.repo.GetAll(c.UserContext(), repository.PegawaiFilter{Search: c.Query("search")})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data berkas: " + err.Error()})
	}

	out := make([]pegawaiBerkas, 0, len(list))
	for _, p := range list {
		m := h.registry.Normalize(p.BerkasURL)
		out = append(out, pegawaiBerkas{ID: p.ID, Nama: p.Nama, NIP: p.NIP, Email: p.Email, Berkas: m, Jumlah: len(m)})
	}

	return c.JSON(fiber.Map{
		"message":     "Berhasil mengambil data berkas",
		"data":        out,
		"total_jenis": len(h.registry.Jenis().Labels()),
	})
}

var errIDTidakValid = errors.New("ID tidak valid")

// adminOwner mengambil email pegawai dari parameter :id
func (h *BerkasHandler) adminOwner(c *fiber.Ctx) (string, error) {
	id, ok := parseID(c)
	if !ok {
		return "", errIDTidakValid
	}
	pegawai, err := h.repo.FindByID(c.UserContext(), id)
	if err != nil {
		return "", err
	}
	return pegawai.Email, nil
}

func (h *BerkasHandler) AdminGet(c *fiber.Ctx) error {
	email, err := h.adminOwner(c)
	if err != nil {
		return berkasError(c, err)
	}
	m, err := h.registry.List(c.UserContext(), email)
	if err != nil {
		return berkasError(c, err)
	}
	return c.JSON(fiber.Map{"data": h.view(m)})
}

func (h *BerkasHandler) AdminUpload(c *fiber.Ctx) error {
	email, err := h.adminOwner(c)
	if err != nil {
		return berkasError(c, err)
	}
	return h.upload(c, email, h.registry.Upload, "Berkas berhasil diunggah")
}

func (h *BerkasHandler) AdminDelete(c *fiber.Ctx) error {
	email, err := h.adminOwner(c)
	if err != nil {
		return berkasError(c, err)
	}
	return h.remove(c, email)
}
