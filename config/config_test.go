package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsDuration(t *testing.T) {
	t.Run("format durasi", func(t *testing.T) {
		t.Setenv("TEST_TTL", "45m")
		assert.Equal(t, 45*time.Minute, GetEnvAsDuration("TEST_TTL", time.Hour))
	})

	t.Run("angka detik", func(t *testing.T) {
		t.Setenv("TEST_TTL", "90")
		assert.Equal(t, 90*time.Second, GetEnvAsDuration("TEST_TTL", time.Hour))
	})

	t.Run("tidak valid pakai fallback", func(t *testing.T) {
		t.Setenv("TEST_TTL", "sebentar")
		assert.Equal(t, time.Hour, GetEnvAsDuration("TEST_TTL", time.Hour))
	})
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("STORAGE_PUBLIC_URL", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "berkas_pegawai", cfg.StorageBucket)
	// Variabel yang di-set kosong tetap dipakai apa adanya
	assert.Equal(t, "", cfg.StoragePublicURL)
}
