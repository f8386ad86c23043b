package session

import (
	"context"
	"strings"
	"testing"

	"si-prima/internal/model"
	"si-prima/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuth struct {
	principals map[string]*usecase.Principal
	err        error
}

func (f *fakeAuth) GetUser(_ context.Context, token string) (*usecase.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.principals[token]
	if !ok {
		return nil, usecase.ErrTokenInvalid
	}
	return p, nil
}

type fakePegawaiRepo struct {
	rows    []model.Pegawai
	err     error
	queries int
}

func (f *fakePegawaiRepo) FindAllByEmail(_ context.Context, email string) ([]model.Pegawai, error) {
	f.queries++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Pegawai
	for _, p := range f.rows {
		if strings.EqualFold(p.Email, email) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePegawaiRepo) FindByEmail(ctx context.Context, email string) (*model.Pegawai, error) {
	rows, err := f.FindAllByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	p := rows[0]
	return &p, nil
}

func TestResolveMetadataFastPath(t *testing.T) {
	auth := &fakeAuth{principals: map[string]*usecase.Principal{
		"tok-admin": {Email: "admin@puskesmas.go.id", Metadata: map[string]string{"role": "admin"}},
	}}
	repo := &fakePegawaiRepo{}

	id := NewResolver(auth, repo).Resolve(context.Background(), "tok-admin")
	require.NotNil(t, id)
	assert.Equal(t, Identity{Role: "admin", Email: "admin@puskesmas.go.id"}, *id)
	assert.Equal(t, 0, repo.queries)
}

func TestResolveFallsBackToPegawaiTable(t *testing.T) {
	auth := &fakeAuth{principals: map[string]*usecase.Principal{
		"tok": {Email: "a@b.com"},
	}}
	repo := &fakePegawaiRepo{rows: []model.Pegawai{
		{ID: 1, Email: "A@B.com", Role: "pegawai"},
		{ID: 2, Email: "a@b.com", Role: "admin"},
	}}

	id := NewResolver(auth, repo).Resolve(context.Background(), "tok")
	require.NotNil(t, id)
	assert.Equal(t, Identity{Role: "pegawai", Email: "a@b.com"}, *id)
	assert.Equal(t, 1, repo.queries)
}

func TestResolveFailsClosed(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		auth  *fakeAuth
		repo  *fakePegawaiRepo
		token string
	}{
		{
			name:  "tanpa token",
			auth:  &fakeAuth{},
			repo:  &fakePegawaiRepo{},
			token: "",
		},
		{
			name:  "layanan auth error",
			auth:  &fakeAuth{err: errors.New("timeout")},
			repo:  &fakePegawaiRepo{},
			token: "tok",
		},
		{
			name:  "tidak ada baris pegawai",
			auth:  &fakeAuth{principals: map[string]*usecase.Principal{"tok": {Email: "x@b.com"}}},
			repo:  &fakePegawaiRepo{},
			token: "tok",
		},
		{
			name:  "query pegawai error",
			auth:  &fakeAuth{principals: map[string]*usecase.Principal{"tok": {Email: "x@b.com"}}},
			repo:  &fakePegawaiRepo{err: errors.New("db mati")},
			token: "tok",
		},
		{
			name:  "role metadata tidak dikenal",
			auth:  &fakeAuth{principals: map[string]*usecase.Principal{"tok": {Email: "x@b.com", Metadata: map[string]string{"role": "superuser"}}}},
			repo:  &fakePegawaiRepo{},
			token: "tok",
		},
		{
			name:  "role tabel kosong",
			auth:  &fakeAuth{principals: map[string]*usecase.Principal{"tok": {Email: "x@b.com"}}},
			repo:  &fakePegawaiRepo{rows: []model.Pegawai{{Email: "x@b.com", Role: ""}}},
			token: "tok",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, NewResolver(tc.auth, tc.repo).Resolve(ctx, tc.token))
		})
	}
}

func TestResolveKeepsStoredRoleCase(t *testing.T) {
	auth := &fakeAuth{principals: map[string]*usecase.Principal{
		"tok": {Email: "p@b.com", Metadata: map[string]string{"role": "Pensiun"}},
	}}
	id := NewResolver(auth, &fakePegawaiRepo{}).Resolve(context.Background(), "tok")
	require.NotNil(t, id)
	assert.Equal(t, "Pensiun", id.Role)
}
