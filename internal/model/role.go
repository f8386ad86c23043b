package model

import "strings"

const (
	RoleAdmin   = "admin"
	RolePegawai = "pegawai"
	RolePensiun = "pensiun"
)

// Halaman awal tiap role
const (
	LoginPath       = "/login"
	AdminHomePath   = "/admin-dashboard"
	PegawaiHomePath = "/pegawai-dashboard"
	PensiunHomePath = "/pensiun-dashboard"
)

var roleHomes = map[string]string{
	RoleAdmin:   AdminHomePath,
	RolePegawai: PegawaiHomePath,
	RolePensiun: PensiunHomePath,
}

// CanonicalRole mengembalikan bentuk huruf kecil dari role yang dikenal.
// Role disimpan apa adanya di database ("Admin", "PEGAWAI"), perbandingan selalu case-insensitive.
func CanonicalRole(role string) (string, bool) {
	r := strings.ToLower(strings.TrimSpace(role))
	_, ok := roleHomes[r]
	return r, ok
}

func SameRole(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// HomePath: role tidak dikenal diarahkan ke halaman login
func HomePath(role string) string {
	r, ok := CanonicalRole(role)
	if !ok {
		return LoginPath
	}
	return roleHomes[r]
}
