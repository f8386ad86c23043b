package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"si-prima/internal/cache"
	"si-prima/internal/logger"
	"si-prima/internal/model"
)

const userKeyPrefix = "user:"

type PegawaiFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.Pegawai, error)
}

// Manager menyimpan salinan data pegawai milik sesi yang sedang login di cache.
type Manager struct {
	store cache.Store
	repo  PegawaiFinder
	ttl   time.Duration
}

func NewManager(store cache.Store, repo PegawaiFinder, ttl time.Duration) *Manager {
	return &Manager{store: store, repo: repo, ttl: ttl}
}

func userKey(email string) string {
	return userKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (m *Manager) For(id *Identity) *Session {
	return &Session{m: m, identity: *id}
}

// Invalidate dipanggil saat admin mengubah atau menghapus data pegawai lain.
func (m *Manager) Invalidate(ctx context.Context, email string) error {
	return m.store.Delete(ctx, userKey(email))
}

type Session struct {
	m        *Manager
	identity Identity
}

func (s *Session) Identity() Identity {
	return s.identity
}

// User mengambil data pegawai dari cache, atau dari database jika belum ada.
func (s *Session) User(ctx context.Context) (*model.Pegawai, error) {
	key := userKey(s.identity.Email)

	data, ok, err := s.m.store.Get(ctx, key)
	if err != nil {
		logger.WarnLog(ctx, "gagal membaca cache %s: %v", key, err)
	}
	if ok {
		var pegawai model.Pegawai
		if err := json.Unmarshal(data, &pegawai); err == nil {
			return &pegawai, nil
		}
		logger.WarnLog(ctx, "cache %s rusak, diambil ulang", key)
	}

	return s.Refresh(ctx)
}

// Refresh mengambil ulang data dari database dan menimpa cache.
func (s *Session) Refresh(ctx context.Context) (*model.Pegawai, error) {
	pegawai, err := s.m.repo.FindByEmail(ctx, s.identity.Email)
	if err != nil {
		return nil, err
	}
	if pegawai.BerkasURL == nil {
		pegawai.BerkasURL = model.BerkasMap{}
	}

	data, err := json.Marshal(pegawai)
	if err != nil {
		return nil, err
	}
	if err := s.m.store.Set(ctx, userKey(s.identity.Email), data, s.m.ttl); err != nil {
		logger.WarnLog(ctx, "gagal menyimpan cache user %s: %v", s.identity.Email, err)
	}
	return pegawai, nil
}

func (s *Session) Clear(ctx context.Context) error {
	return s.m.store.Delete(ctx, userKey(s.identity.Email))
}
