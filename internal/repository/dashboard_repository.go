package repository

import (
	"context"
	"strings"

	"si-prima/internal/model"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalPegawai   int64 `json:"total_pegawai"`
	PegawaiAktif   int64 `json:"pegawai_aktif"`
	PegawaiPensiun int64 `json:"pegawai_pensiun"`
	TotalAdmin     int64 `json:"total_admin"`
	TotalBerkas    int64 `json:"total_berkas"`
}

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

// BerkasCounter menghitung berkas yang sah dalam satu map
type BerkasCounter func(model.BerkasMap) int

type dashboardRepository struct {
	db    *gorm.DB
	count BerkasCounter
}

// NewDashboardRepository: count nil berarti semua kunci dihitung
func NewDashboardRepository(db *gorm.DB, count BerkasCounter) DashboardRepository {
	if count == nil {
		count = func(m model.BerkasMap) int { return len(m) }
	}
	return &dashboardRepository{db: db, count: count}
}

func (r *dashboardRepository) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	// 1. Jumlah pegawai per role
	var perRole []struct {
		Role  string
		Count int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Pegawai{}).
		Select("role, count(*) as count").Group("role").Scan(&perRole).Error; err != nil {
		return nil, err
	}
	for _, row := range perRole {
		stats.TotalPegawai += row.Count
		switch strings.ToLower(row.Role) {
		case model.RolePegawai:
			stats.PegawaiAktif += row.Count
		case model.RolePensiun:
			stats.PegawaiPensiun += row.Count
		case model.RoleAdmin:
			stats.TotalAdmin += row.Count
		}
	}

	// 2. Total berkas dihitung dari map hasil Scan, bukan dari JSON mentah
	var rows []model.Pegawai
	if err := r.db.WithContext(ctx).Select("id", "berkas_url").Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		stats.TotalBerkas += int64(r.count(p.BerkasURL))
	}

	return stats, nil
}
