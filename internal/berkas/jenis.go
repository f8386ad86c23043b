package berkas

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultJenis adalah daftar jenis berkas bawaan, urutannya dipakai saat menampilkan.
var DefaultJenis = []string{
	"SK CPNS",
	"SK PNS",
	"KTP",
	"KARTU KELUARGA",
	"NPWP",
	"KARTU PEGAWAI",
	"SERTIFIKAT",
	"SK BERKALA",
	"SK FUNGSIONAL",
	"BPJS",
	"AKTE",
	"IJAZAH PENDIDIKAN TERAKHIR",
}

// JenisSet adalah himpunan label berkas yang dikenal.
type JenisSet struct {
	ordered []string
	index   map[string]struct{}
}

func NewJenisSet(labels []string) *JenisSet {
	s := &JenisSet{index: make(map[string]struct{}, len(labels))}
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := s.index[l]; dup {
			continue
		}
		s.index[l] = struct{}{}
		s.ordered = append(s.ordered, l)
	}
	return s
}

func (s *JenisSet) Has(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Labels mengembalikan salinan daftar label sesuai urutan
func (s *JenisSet) Labels() []string {
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

type jenisFile struct {
	Jenis []string `yaml:"jenis"`
}

// LoadJenisSet membaca daftar jenis dari file YAML:
//
//	jenis:
//	  - KTP
//	  - NPWP
//
// Path kosong berarti memakai DefaultJenis.
func LoadJenisSet(path string) (*JenisSet, error) {
	if path == "" {
		return NewJenisSet(DefaultJenis), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "gagal membaca file jenis berkas %s", path)
	}

	var f jenisFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "format file jenis berkas %s tidak valid", path)
	}

	set := NewJenisSet(f.Jenis)
	if len(set.ordered) == 0 {
		return nil, errors.Errorf("file jenis berkas %s tidak berisi jenis apa pun", path)
	}
	return set, nil
}
