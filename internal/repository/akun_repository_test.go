package repository

import (
	"context"
	"testing"

	"si-prima/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAkunFindAndDeleteByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewAkunRepository(newTestDB(t))

	akun := &model.Akun{Email: "sari@puskesmas.go.id", Password: "hash", Metadata: map[string]string{"nama": "Sari"}}
	require.NoError(t, repo.Create(ctx, akun))
	assert.NotEmpty(t, akun.ID)

	got, err := repo.FindByEmail(ctx, "SARI@puskesmas.go.id")
	require.NoError(t, err)
	assert.Equal(t, akun.ID, got.ID)
	assert.Equal(t, "Sari", got.Metadata["nama"])

	require.NoError(t, repo.DeleteByEmail(ctx, " Sari@Puskesmas.go.id"))
	_, err = repo.FindByEmail(ctx, "sari@puskesmas.go.id")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.DeleteByEmail(ctx, "sari@puskesmas.go.id")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
