package export

import (
	"bytes"
	"testing"

	"si-prima/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWritePegawai(t *testing.T) {
	list := []model.Pegawai{
		{Nama: "Ani", NIP: "198001012005012001", Email: "ani@puskesmas.go.id", Role: "pegawai",
			BerkasURL: model.BerkasMap{"KTP": {URL: "http://x/ktp.pdf"}, "FOTO": {URL: "http://x/foto.jpg"}}},
		{Nama: "Budi", Email: "budi@puskesmas.go.id", Role: "pensiun", TanggalLahir: "1960-02-03"},
	}

	var buf bytes.Buffer
	onlyKTP := func(m model.BerkasMap) int {
		if _, ok := m["KTP"]; ok {
			return 1
		}
		return 0
	}
	require.NoError(t, WritePegawai(&buf, list, onlyKTP))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetPegawai)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Nama", rows[0][1])
	assert.Equal(t, []string{"1", "Ani", "198001012005012001", "ani@puskesmas.go.id"}, rows[1][:4])
	assert.Equal(t, "1", rows[1][13])
	assert.Equal(t, "1960-02-03", rows[2][8])
	assert.Equal(t, "0", rows[2][13])
}
