package storage

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrObjectExists = errors.New("objek sudah ada")
	ErrInvalidPath  = errors.New("path objek tidak valid")
)

type UploadOptions struct {
	Upsert      bool
	ContentType string
}

// Bucket adalah object storage publik: setiap objek punya URL yang bisa diakses langsung.
type Bucket interface {
	Name() string
	Upload(ctx context.Context, objectPath string, body io.Reader, opts UploadOptions) error
	PublicURL(objectPath string) string
	Remove(ctx context.Context, objectPaths ...string) error
	// PathFromURL adalah kebalikan PublicURL
	PathFromURL(publicURL string) (string, error)
}

// PublicSegment adalah potongan path tetap di setiap URL publik.
func PublicSegment(bucket string) string {
	return "/object/public/" + bucket + "/"
}

// CleanPath menolak path absolut dan traversal ("..").
func CleanPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", ErrInvalidPath
		}
	}
	return path.Clean(p), nil
}

func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// pathFromURL memotong URL publik pada segmen tetap lalu men-decode sisanya.
func pathFromURL(publicURL, bucket string) (string, error) {
	seg := PublicSegment(bucket)
	idx := strings.Index(publicURL, seg)
	if idx < 0 {
		return "", errors.Wrapf(ErrInvalidPath, "segmen %s tidak ditemukan", seg)
	}
	rest := publicURL[idx+len(seg):]
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	decoded, err := url.PathUnescape(rest)
	if err != nil {
		return "", errors.Wrap(ErrInvalidPath, err.Error())
	}
	return CleanPath(decoded)
}
