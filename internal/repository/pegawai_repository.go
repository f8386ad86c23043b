package repository

import (
	"context"
	"strings"

	"si-prima/internal/model"

	"gorm.io/gorm"
)

// PegawaiFilter: semua field opsional, string kosong berarti tidak difilter
type PegawaiFilter struct {
	Search       string // nama atau NIP
	Role         string
	Jabatan      string // mengandung
	JenisKelamin string
}

type PegawaiRepository interface {
	FindAllByEmail(ctx context.Context, email string) ([]model.Pegawai, error)
	FindByEmail(ctx context.Context, email string) (*model.Pegawai, error)
	FindByID(ctx context.Context, id uint) (*model.Pegawai, error)
	GetAll(ctx context.Context, filter PegawaiFilter) ([]model.Pegawai, error)
	Create(ctx context.Context, pegawai *model.Pegawai) error
	Update(ctx context.Context, pegawai *model.Pegawai) error
	Delete(ctx context.Context, id uint) error
	LoadBerkas(ctx context.Context, email string) (model.BerkasMap, error)
	SaveBerkas(ctx context.Context, email string, berkas model.BerkasMap) error
}

type pegawaiRepository struct {
	db *gorm.DB
}

func NewPegawaiRepository(db *gorm.DB) PegawaiRepository {
	return &pegawaiRepository{db}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindAllByEmail mencocokkan email tanpa memperhatikan huruf besar/kecil.
// Data lama bisa punya duplikat, pemanggil biasanya memakai baris pertama.
func (r *pegawaiRepository) FindAllByEmail(ctx context.Context, email string) ([]model.Pegawai, error) {
	var list []model.Pegawai
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", emailKey(email)).Order("id asc").Find(&list).Error
	return list, err
}

func (r *pegawaiRepository) FindByEmail(ctx context.Context, email string) (*model.Pegawai, error) {
	var pegawai model.Pegawai
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", emailKey(email)).Order("id asc").First(&pegawai).Error
	return &pegawai, err
}

func (r *pegawaiRepository) FindByID(ctx context.Context, id uint) (*model.Pegawai, error) {
	var pegawai model.Pegawai
	err := r.db.WithContext(ctx).First(&pegawai, id).Error
	return &pegawai, err
}

func (r *pegawaiRepository) GetAll(ctx context.Context, filter PegawaiFilter) ([]model.Pegawai, error) {
	var list []model.Pegawai
	query := r.db.WithContext(ctx).Order("nama asc")

	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(nama) LIKE ? OR LOWER(nip) LIKE ?", pattern, pattern)
	}
	if filter.Role != "" {
		query = query.Where("LOWER(role) = ?", strings.ToLower(filter.Role))
	}
	if j := strings.TrimSpace(filter.Jabatan); j != "" {
		query = query.Where("LOWER(jabatan) LIKE ?", "%"+strings.ToLower(j)+"%")
	}
	if filter.JenisKelamin != "" {
		query = query.Where("jenis_kelamin = ?", filter.JenisKelamin)
	}

	err := query.Find(&list).Error
	return list, err
}

func (r *pegawaiRepository) Create(ctx context.Context, pegawai *model.Pegawai) error {
	if pegawai.BerkasURL == nil {
		pegawai.BerkasURL = model.BerkasMap{}
	}
	return r.db.WithContext(ctx).Create(pegawai).Error
}

// Update menulis semua kolom kecuali berkas_url, yang hanya boleh diubah lewat SaveBerkas
func (r *pegawaiRepository) Update(ctx context.Context, pegawai *model.Pegawai) error {
	return r.db.WithContext(ctx).Model(pegawai).
		Select("*").Omit("id", "berkas_url", "created_at").
		Updates(pegawai).Error
}

// Delete menghapus permanen (tabel pegawai tidak memakai soft delete)
func (r *pegawaiRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Pegawai{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pegawaiRepository) LoadBerkas(ctx context.Context, email string) (model.BerkasMap, error) {
	var pegawai model.Pegawai
	err := r.db.WithContext(ctx).Select("id", "berkas_url").
		Where("LOWER(email) = ?", emailKey(email)).Order("id asc").First(&pegawai).Error
	if err != nil {
		return nil, err
	}
	if pegawai.BerkasURL == nil {
		return model.BerkasMap{}, nil
	}
	return pegawai.BerkasURL, nil
}

// SaveBerkas menulis seluruh map sekaligus, tidak pernah per-kunci.
// Baris yang sudah terhapus menghasilkan gorm.ErrRecordNotFound.
func (r *pegawaiRepository) SaveBerkas(ctx context.Context, email string, berkas model.BerkasMap) error {
	key := emailKey(email)
	res := r.db.WithContext(ctx).Model(&model.Pegawai{}).
		Where("LOWER(email) = ?", key).
		Update("berkas_url", berkas)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// MySQL melaporkan 0 baris bila nilainya tidak berubah, jadi cek keberadaan baris
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Pegawai{}).
		Where("LOWER(email) = ?", key).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
