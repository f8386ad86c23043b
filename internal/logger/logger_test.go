package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureCtx(buf *bytes.Buffer) context.Context {
	l := zerolog.New(buf)
	return l.WithContext(context.Background())
}

func TestErrorLogFormatsMessageAndKeepsErrorField(t *testing.T) {
	var buf bytes.Buffer
	ctx := captureCtx(&buf)

	ErrorLog(ctx, "gagal menyiapkan database: %v", errors.New("koneksi ditolak"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "gagal menyiapkan database: koneksi ditolak", entry["message"])
	assert.Equal(t, "koneksi ditolak", entry["error"])
}

func TestErrorLogWithoutError(t *testing.T) {
	var buf bytes.Buffer
	ctx := captureCtx(&buf)

	ErrorLog(ctx, "port %s dipakai", "3000")
	ErrorLog(ctx, "server berhenti")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "port 3000 dipakai")
	assert.Contains(t, string(lines[1]), "server berhenti")
}

func TestWithLoggerAddsFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(captureCtx(&buf), map[string]interface{}{"email": "budi@puskesmas.go.id"})

	InfoLog(ctx, "berkas %s diunggah", "KTP")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "budi@puskesmas.go.id", entry["email"])
	assert.Equal(t, "berkas KTP diunggah", entry["message"])
}
