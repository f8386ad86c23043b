package repository

import (
	"context"
	"path/filepath"
	"testing"

	"si-prima/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB membuka database sqlite per test, skema sama dengan AutoMigrate di config
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "si_prima.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Pegawai{}, &model.Akun{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func seedPegawai(t *testing.T, repo PegawaiRepository, list ...model.Pegawai) []model.Pegawai {
	t.Helper()
	out := make([]model.Pegawai, 0, len(list))
	for i := range list {
		p := list[i]
		require.NoError(t, repo.Create(context.Background(), &p))
		out = append(out, p)
	}
	return out
}
