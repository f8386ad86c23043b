package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Akun adalah kredensial login, terpisah dari data pegawai.
// Metadata menyimpan data tambahan saat registrasi (nama, role).
type Akun struct {
	ID        string            `json:"id" gorm:"type:char(36);primaryKey"`
	Email     string            `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Password  string            `json:"-" gorm:"not null"`
	Metadata  map[string]string `json:"user_metadata" gorm:"serializer:json;type:text"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (Akun) TableName() string {
	return "akun"
}

// Generate UUID sebelum disimpan
func (a *Akun) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return
}
