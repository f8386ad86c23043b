package session

import (
	"context"
	"strings"

	"si-prima/internal/logger"
	"si-prima/internal/model"
	"si-prima/internal/usecase"
)

// Identity adalah hasil resolusi sesi. Role disimpan apa adanya, bandingkan dengan model.SameRole.
type Identity struct {
	Role  string `json:"role"`
	Email string `json:"email"`
}

type UserGetter interface {
	GetUser(ctx context.Context, token string) (*usecase.Principal, error)
}

type PegawaiLookup interface {
	FindAllByEmail(ctx context.Context, email string) ([]model.Pegawai, error)
}

type Resolver struct {
	auth    UserGetter
	pegawai PegawaiLookup
}

func NewResolver(auth UserGetter, pegawai PegawaiLookup) *Resolver {
	return &Resolver{auth: auth, pegawai: pegawai}
}

// Resolve mengembalikan nil jika token tidak valid, pegawai tidak ditemukan,
// role tidak dikenal, atau terjadi error apa pun.
func (r *Resolver) Resolve(ctx context.Context, token string) *Identity {
	// 1. Ambil user yang sedang login
	principal, err := r.auth.GetUser(ctx, token)
	if err != nil || principal == nil {
		if err != nil && token != "" {
			logger.DebugLog(ctx, "sesi tidak valid: %v", err)
		}
		return nil
	}

	// 2. Role dari metadata (tanpa query tabel)
	if role := strings.TrimSpace(principal.Metadata["role"]); role != "" {
		return identityOf(ctx, role, principal.Email)
	}

	// 3. Fallback: role dari tabel pegawai, baris pertama
	rows, err := r.pegawai.FindAllByEmail(ctx, principal.Email)
	if err != nil {
		logger.WarnLog(ctx, "gagal mengambil role pegawai %s: %v", principal.Email, err)
		return nil
	}
	if len(rows) == 0 {
		return nil
	}
	return identityOf(ctx, rows[0].Role, principal.Email)
}

func identityOf(ctx context.Context, role, email string) *Identity {
	if _, ok := model.CanonicalRole(role); !ok {
		logger.WarnLog(ctx, "role %q milik %s tidak dikenal", role, email)
		return nil
	}
	return &Identity{Role: role, Email: email}
}
