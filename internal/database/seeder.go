package database

import (
	"strings"

	"si-prima/internal/model"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAkun adalah satu akun awal beserta data pegawainya
type SeedAkun struct {
	Nama     string
	Email    string
	Password string
	Role     string
	NIP      string
	Jabatan  string
}

func DefaultSeeds(adminEmail, adminPassword string) []SeedAkun {
	return []SeedAkun{
		{
			Nama:     "Administrator SI PRIMA",
			Email:    adminEmail,
			Password: adminPassword,
			Role:     model.RoleAdmin,
			Jabatan:  "Kepala Sub Bagian Umum dan Kepegawaian",
		},
		{
			Nama:     "Budi Pegawai",
			Email:    "budi@si-prima.local",
			Password: "pegawai123",
			Role:     model.RolePegawai,
			NIP:      "198701012010011001",
			Jabatan:  "Perawat",
		},
	}
}

// SeedAll aman dijalankan berulang: data yang sudah ada tidak diduplikasi,
// password akun selalu disinkronkan dengan nilai seed.
func SeedAll(db *gorm.DB, seeds []SeedAkun) error {
	for _, s := range seeds {
		email := strings.ToLower(strings.TrimSpace(s.Email))

		// 1. Akun login
		hashed, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "gagal mengenkripsi password")
		}
		akun := model.Akun{
			Email:    email,
			Password: string(hashed),
			Metadata: map[string]string{"nama": s.Nama, "role": s.Role},
		}
		if err := db.Where(model.Akun{Email: email}).FirstOrCreate(&akun).Error; err != nil {
			return errors.Wrapf(err, "gagal seed akun %s", email)
		}
		if err := db.Model(&akun).Update("password", string(hashed)).Error; err != nil {
			return errors.Wrapf(err, "gagal update password %s", email)
		}

		// 2. Data pegawai
		pegawai := model.Pegawai{
			Nama:      s.Nama,
			Email:     email,
			NIP:       s.NIP,
			Jabatan:   s.Jabatan,
			Role:      s.Role,
			BerkasURL: model.BerkasMap{},
		}
		if err := db.Where(model.Pegawai{Email: email}).FirstOrCreate(&pegawai).Error; err != nil {
			return errors.Wrapf(err, "gagal seed pegawai %s", email)
		}
	}
	return nil
}
