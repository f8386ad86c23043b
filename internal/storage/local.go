package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalBucket menyimpan objek di disk: <root>/<bucket>/<path>.
// Folder bucket disajikan oleh app.Static di bawah <publicBase>/object/public/<bucket>/.
type LocalBucket struct {
	root       string
	bucket     string
	publicBase string
}

func NewLocalBucket(root, bucket, publicBase string) (*LocalBucket, error) {
	dir := filepath.Join(root, bucket)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "gagal membuat folder bucket")
		}
	}
	return &LocalBucket{root: root, bucket: bucket, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

func (b *LocalBucket) Name() string {
	return b.bucket
}

// Dir adalah folder fisik bucket, dipakai untuk app.Static
func (b *LocalBucket) Dir() string {
	return filepath.Join(b.root, b.bucket)
}

func (b *LocalBucket) fullPath(objectPath string) (string, error) {
	clean, err := CleanPath(objectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(b.Dir(), filepath.FromSlash(clean)), nil
}

func (b *LocalBucket) Upload(ctx context.Context, objectPath string, body io.Reader, opts UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := b.fullPath(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return errors.Wrap(err, "gagal membuat folder")
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Upsert {
		flag = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	// Tulis ke file sementara dulu agar pembaca tidak melihat file setengah jadi
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return errors.Wrap(err, "gagal membuat file sementara")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return errors.Wrap(err, "gagal menulis file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "gagal menulis file")
	}

	if !opts.Upsert {
		f, err := os.OpenFile(full, flag, 0644)
		if err != nil {
			if os.IsExist(err) {
				return ErrObjectExists
			}
			return errors.Wrap(err, "gagal membuat objek")
		}
		f.Close()
	}
	return errors.Wrap(os.Rename(tmpName, full), "gagal menyimpan objek")
}

func (b *LocalBucket) PublicURL(objectPath string) string {
	return b.publicBase + PublicSegment(b.bucket) + escapePath(objectPath)
}

// Remove mengabaikan objek yang memang sudah tidak ada
func (b *LocalBucket) Remove(ctx context.Context, objectPaths ...string) error {
	for _, p := range objectPaths {
		if err := ctx.Err(); err != nil {
			return err
		}
		full, err := b.fullPath(p)
		if err != nil {
			return err
		}
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "gagal menghapus %s", p)
		}
	}
	return nil
}

func (b *LocalBucket) PathFromURL(publicURL string) (string, error) {
	return pathFromURL(publicURL, b.bucket)
}
