package repository

import (
	"context"
	"testing"

	"si-prima/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	pegawai := NewPegawaiRepository(db)
	seedPegawai(t, pegawai,
		model.Pegawai{Nama: "Admin", Email: "admin@x.id", Role: model.RoleAdmin},
		model.Pegawai{Nama: "Budi", Email: "budi@x.id", Role: model.RolePegawai},
		model.Pegawai{Nama: "Citra", Email: "citra@x.id", Role: "Pegawai"},
		model.Pegawai{Nama: "Agus", Email: "agus@x.id", Role: model.RolePensiun},
	)
	require.NoError(t, pegawai.SaveBerkas(ctx, "budi@x.id", model.BerkasMap{
		"KTP":         {URL: "http://localhost/ktp.pdf"},
		"LABEL ASING": {URL: "http://localhost/asing.pdf"},
		"SK CPNS":     {URL: "http://localhost/sk.pdf"},
	}))

	// tanpa penghitung: semua kunci dihitung
	stats, err := NewDashboardRepository(db, nil).GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalPegawai)
	assert.Equal(t, int64(2), stats.PegawaiAktif)
	assert.Equal(t, int64(1), stats.PegawaiPensiun)
	assert.Equal(t, int64(1), stats.TotalAdmin)
	assert.Equal(t, int64(3), stats.TotalBerkas)

	known := func(m model.BerkasMap) int {
		n := 0
		for label := range m {
			if label != "LABEL ASING" {
				n++
			}
		}
		return n
	}
	stats, err = NewDashboardRepository(db, known).GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalBerkas)
}
