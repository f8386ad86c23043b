package model

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"si-prima/internal/logger"
)

// BerkasEntry adalah metadata satu file dokumen yang sudah diunggah.
type BerkasEntry struct {
	URL        string     `json:"url"`
	Name       string     `json:"name,omitempty"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
}

// BerkasMap memetakan jenis berkas ("KTP", "SK CPNS", ...) ke file yang diunggah.
// Kunci yang tidak ada berarti berkas belum diunggah.
type BerkasMap map[string]BerkasEntry

// Scan dipanggil GORM saat membaca kolom berkas_url. Tidak pernah mengembalikan error:
// data rusak diturunkan menjadi map kosong.
func (m *BerkasMap) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = BerkasMap{}
	case []byte:
		*m = ParseBerkas(v)
	case string:
		*m = ParseBerkas([]byte(v))
	default:
		logger.WarnLog(context.Background(), "berkas_url bertipe tidak dikenal (%T), dianggap kosong", value)
		*m = BerkasMap{}
	}
	return nil
}

// Value selalu menulis satu bentuk: objek JSON.
func (m BerkasMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// ParseBerkas menormalkan isi kolom berkas_url menjadi BerkasMap. Bentuk yang diterima:
//   - objek JSON {"KTP": {"url": ...}}
//   - string JSON berisi objek (double encoded)
//   - nilai lama berupa string URL langsung {"KTP": "https://..."}
//   - null / kosong
//
// Selain itu dicatat sebagai peringatan dan hasilnya map kosong.
func ParseBerkas(raw []byte) BerkasMap {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return BerkasMap{}
	}

	// Double encoded: "{\"KTP\": ...}"
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			logger.WarnLog(context.Background(), "berkas_url tidak valid: %v", err)
			return BerkasMap{}
		}
		return ParseBerkas([]byte(inner))
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.WarnLog(context.Background(), "berkas_url tidak valid: %v", err)
		return BerkasMap{}
	}

	out := make(BerkasMap, len(entries))
	for jenis, rawEntry := range entries {
		entry, err := parseEntry(rawEntry)
		if err != nil {
			logger.WarnLog(context.Background(), "entri berkas %q dilewati: %v", jenis, err)
			continue
		}
		if entry.URL == "" {
			continue
		}
		out[jenis] = entry
	}
	return out
}

func parseEntry(raw json.RawMessage) (BerkasEntry, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return BerkasEntry{}, nil
	}

	switch raw[0] {
	case '"':
		var url string
		if err := json.Unmarshal(raw, &url); err != nil {
			return BerkasEntry{}, err
		}
		return BerkasEntry{URL: strings.TrimSpace(url)}, nil
	case '{':
		// uploaded_at dibaca longgar: format yang tidak dikenal tidak menggugurkan entri
		var aux struct {
			URL        string      `json:"url"`
			Name       string      `json:"name"`
			UploadedAt interface{} `json:"uploaded_at"`
		}
		if err := json.Unmarshal(raw, &aux); err != nil {
			return BerkasEntry{}, err
		}
		entry := BerkasEntry{URL: strings.TrimSpace(aux.URL), Name: aux.Name}
		if s, ok := aux.UploadedAt.(string); ok {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				entry.UploadedAt = &t
			}
		}
		return entry, nil
	default:
		return BerkasEntry{}, fmt.Errorf("bentuk entri tidak dikenal: %s", string(raw))
	}
}
