package model

import "time"

// Pegawai adalah data induk pegawai. Email unik dan menjadi kunci untuk profil & berkas,
// sedangkan ID adalah satu-satunya primary key yang dipakai halaman admin.
type Pegawai struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Nama               string    `json:"nama" gorm:"not null"`
	Email              string    `json:"email" gorm:"column:email;uniqueIndex;size:191;not null"`
	NIP                string    `json:"nip" gorm:"column:nip;size:32"`
	Jabatan            string    `json:"jabatan"`
	Pangkat            string    `json:"pangkat"`
	PendidikanTerakhir string    `json:"pendidikan_terakhir"`
	TempatLahir        string    `json:"tempat_lahir"`
	TanggalLahir       string    `json:"tanggal_lahir" gorm:"size:10"` // Format YYYY-MM-DD
	TMTCPNS            string    `json:"tmt_cpns" gorm:"column:tmt_cpns;size:10"`
	TMTPNS             string    `json:"tmt_pns" gorm:"column:tmt_pns;size:10"`
	JenisKelamin       string    `json:"jenis_kelamin"`
	Role               string    `json:"role" gorm:"size:20;default:pegawai"` // admin / pegawai / pensiun
	BerkasURL          BerkasMap `json:"berkas_url" gorm:"column:berkas_url;type:json"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Pegawai) TableName() string {
	return "pegawai"
}
