package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHomePath(t *testing.T) {
	cases := map[string]string{
		"admin":    AdminHomePath,
		"Admin":    AdminHomePath,
		"PEGAWAI":  PegawaiHomePath,
		" pensiun": PensiunHomePath,
		"operator": LoginPath,
		"":         LoginPath,
	}
	for role, want := range cases {
		assert.Equal(t, want, HomePath(role), "role %q", role)
	}
}

func TestCanonicalRole(t *testing.T) {
	r, ok := CanonicalRole("Pegawai")
	assert.True(t, ok)
	assert.Equal(t, RolePegawai, r)

	_, ok = CanonicalRole("superadmin")
	assert.False(t, ok)

	assert.True(t, SameRole("ADMIN", "admin"))
	assert.False(t, SameRole("admin", "pegawai"))
}
