package config

import (
	"context"
	"strings"

	"si-prima/internal/logger"
	"si-prima/internal/model"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Dialector memilih driver GORM sesuai DB_DRIVER
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(driver) {
	case "", "mysql":
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(dsn), nil
	}
	return nil, errors.Errorf("DB_DRIVER %q tidak didukung (mysql/postgres)", driver)
}

func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, errors.Wrap(err, "gagal koneksi ke database")
	}

	logger.InfoLog(context.Background(), "koneksi database %s berhasil", cfg.DBDriver)

	// Auto Migration: tabel pegawai & akun
	if err := db.AutoMigrate(&model.Pegawai{}, &model.Akun{}); err != nil {
		return nil, errors.Wrap(err, "gagal migrasi tabel")
	}

	return db, nil
}
