package berkas

import (
	"context"
	"io"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"si-prima/internal/logger"
	"si-prima/internal/model"
	"si-prima/internal/storage"

	"github.com/pkg/errors"
)

var (
	ErrJenisTidakDikenal = errors.New("jenis berkas tidak dikenal")
	ErrFileKosong        = errors.New("file wajib diisi")
	ErrBerkasNotFound    = errors.New("berkas belum diunggah")
	ErrInvalidPath       = storage.ErrInvalidPath
)

// Store adalah tempat map berkas milik seorang pegawai disimpan (kolom berkas_url).
// Map selalu dibaca dan ditulis utuh.
type Store interface {
	LoadBerkas(ctx context.Context, email string) (model.BerkasMap, error)
	SaveBerkas(ctx context.Context, email string, berkas model.BerkasMap) error
}

// File adalah file yang akan diunggah
type File struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

type Registry struct {
	store  Store
	bucket storage.Bucket
	jenis  *JenisSet
	now    func() time.Time
	locks  ownerLocks
}

func NewRegistry(store Store, bucket storage.Bucket, jenis *JenisSet) *Registry {
	if jenis == nil {
		jenis = NewJenisSet(DefaultJenis)
	}
	return &Registry{
		store:  store,
		bucket: bucket,
		jenis:  jenis,
		now:    time.Now,
		locks:  ownerLocks{m: make(map[string]*ownerLock)},
	}
}

func (r *Registry) Jenis() *JenisSet {
	return r.jenis
}

func ownerKey(owner string) string {
	return strings.ToLower(strings.TrimSpace(owner))
}

// List mengembalikan map berkas yang sudah dinormalkan.
func (r *Registry) List(ctx context.Context, owner string) (model.BerkasMap, error) {
	current, err := r.store.LoadBerkas(ctx, ownerKey(owner))
	if err != nil {
		return nil, err
	}
	return r.Normalize(current), nil
}

// Upload menyimpan file ke bucket lalu menulis entri baru ke map milik owner.
// Entri lama dengan label yang sama ditimpa.
func (r *Registry) Upload(ctx context.Context, owner, label string, file File) (model.BerkasMap, error) {
	owner = ownerKey(owner)
	if !r.jenis.Has(label) {
		return nil, ErrJenisTidakDikenal
	}
	if file.Body == nil || file.Size <= 0 {
		return nil, ErrFileKosong
	}

	unlock := r.locks.lock(owner)
	defer unlock()

	// 1. Baca map saat ini (sekaligus memastikan pegawai ada sebelum upload)
	current, err := r.store.LoadBerkas(ctx, owner)
	if err != nil {
		return nil, err
	}
	berkas := r.Normalize(current)
	previous, hadPrevious := berkas[label]

	// 2. Upload ke bucket
	now := r.now().UTC()
	objectPath, err := storage.CleanPath(ObjectPath(owner, label, file.Name, now))
	if err != nil {
		return nil, err
	}
	err = r.bucket.Upload(ctx, objectPath, file.Body, storage.UploadOptions{Upsert: true, ContentType: file.ContentType})
	if err != nil {
		return nil, errors.Wrap(err, "gagal mengunggah file")
	}

	// 3. Tulis map utuh
	berkas[label] = model.BerkasEntry{
		URL:        r.bucket.PublicURL(objectPath),
		Name:       file.Name,
		UploadedAt: &now,
	}
	if err := r.store.SaveBerkas(ctx, owner, berkas); err != nil {
		r.removeObject(ctx, objectPath)
		return nil, errors.Wrap(err, "gagal menyimpan data berkas")
	}

	// 4. File lama yang sudah tergantikan dibuang
	if hadPrevious {
		if oldPath, err := r.bucket.PathFromURL(previous.URL); err == nil && oldPath != objectPath {
			r.removeObject(ctx, oldPath)
		}
	}

	return berkas, nil
}

// Replace sama dengan Upload, dipisah agar pemanggil bisa membedakan niatnya.
func (r *Registry) Replace(ctx context.Context, owner, label string, file File) (model.BerkasMap, error) {
	return r.Upload(ctx, owner, label, file)
}

// Remove menghapus file dari bucket lalu menghapus label dari map.
// Jika URL tidak bisa diubah kembali menjadi path, map tidak diubah.
func (r *Registry) Remove(ctx context.Context, owner, label string) (model.BerkasMap, error) {
	owner = ownerKey(owner)
	if !r.jenis.Has(label) {
		return nil, ErrJenisTidakDikenal
	}

	unlock := r.locks.lock(owner)
	defer unlock()

	current, err := r.store.LoadBerkas(ctx, owner)
	if err != nil {
		return nil, err
	}
	berkas := r.Normalize(current)

	entry, ok := berkas[label]
	if !ok {
		return nil, ErrBerkasNotFound
	}
	objectPath, err := r.bucket.PathFromURL(entry.URL)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPath, "url berkas %s", label)
	}

	r.removeObject(ctx, objectPath)

	delete(berkas, label)
	if err := r.store.SaveBerkas(ctx, owner, berkas); err != nil {
		return nil, errors.Wrap(err, "gagal menyimpan data berkas")
	}
	return berkas, nil
}

func (r *Registry) removeObject(ctx context.Context, objectPath string) {
	if err := r.bucket.Remove(ctx, objectPath); err != nil {
		logger.WarnLog(ctx, "gagal menghapus objek %s: %v", objectPath, err)
	}
}

// Normalize membuang label yang tidak dikenal dan entri tanpa url.
// Hasilnya selalu map baru.
func (r *Registry) Normalize(m model.BerkasMap) model.BerkasMap {
	out := make(model.BerkasMap, len(m))
	for label, entry := range m {
		if !r.jenis.Has(label) {
			logger.DebugLog(context.Background(), "label berkas %q tidak dikenal, diabaikan", label)
			continue
		}
		if strings.TrimSpace(entry.URL) == "" {
			continue
		}
		out[label] = entry
	}
	return out
}

// ObjectPath: <email>/<LABEL_DENGAN_UNDERSCORE>_<unix milli>_<nama file>
func ObjectPath(owner, label, fileName string, at time.Time) string {
	return ownerKey(owner) + "/" +
		strings.Join(strings.Fields(label), "_") + "_" +
		strconv.FormatInt(at.UnixMilli(), 10) + "_" +
		sanitizeFileName(fileName)
}

func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == ".." {
		name = ""
	}
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '.', c == '-', c == '_':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

type ownerLock struct {
	sync.Mutex
	refs int
}

// ownerLocks menyerialkan baca-ubah-tulis per pegawai di dalam satu proses.
type ownerLocks struct {
	mu sync.Mutex
	m  map[string]*ownerLock
}

func (l *ownerLocks) lock(key string) func() {
	l.mu.Lock()
	ol, ok := l.m[key]
	if !ok {
		ol = &ownerLock{}
		l.m[key] = ol
	}
	ol.refs++
	l.mu.Unlock()

	ol.Lock()
	return func() {
		ol.Unlock()
		l.mu.Lock()
		ol.refs--
		if ol.refs == 0 {
			delete(l.m, key)
		}
		l.mu.Unlock()
	}
}
