package export

import (
	"io"
	"strconv"

	"si-prima/internal/model"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const SheetPegawai = "Data Pegawai"

var pegawaiHeaders = []interface{}{
	"No", "Nama", "NIP", "Email", "Jabatan", "Pangkat", "Pendidikan Terakhir",
	"Tempat Lahir", "Tanggal Lahir", "TMT CPNS", "TMT PNS", "Jenis Kelamin", "Role", "Jumlah Berkas",
}

// BerkasCounter menghitung berkas valid milik pegawai (label asing tidak ikut dihitung)
type BerkasCounter func(model.BerkasMap) int

// WritePegawai menulis daftar pegawai sebagai workbook xlsx satu sheet.
func WritePegawai(w io.Writer, list []model.Pegawai, count BerkasCounter) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPegawai); err != nil {
		return errors.Wrap(err, "gagal menamai sheet")
	}

	sw, err := f.NewStreamWriter(SheetPegawai)
	if err != nil {
		return errors.Wrap(err, "gagal membuat stream writer")
	}

	// 1. Header tebal
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "gagal membuat style header")
	}
	if err := sw.SetColWidth(2, 2, 30); err != nil {
		return err
	}
	if err := sw.SetRow("A1", pegawaiHeaders, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return errors.Wrap(err, "gagal menulis header")
	}

	// 2. Satu baris per pegawai
	for i, p := range list {
		jumlah := len(p.BerkasURL)
		if count != nil {
			jumlah = count(p.BerkasURL)
		}
		row := []interface{}{
			i + 1, p.Nama, p.NIP, p.Email, p.Jabatan, p.Pangkat, p.PendidikanTerakhir,
			p.TempatLahir, p.TanggalLahir, p.TMTCPNS, p.TMTPNS, p.JenisKelamin, p.Role, jumlah,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return errors.Wrap(err, "gagal menulis baris "+strconv.Itoa(i+1))
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "gagal menyelesaikan sheet")
	}

	_, err = f.WriteTo(w)
	return err
}
