package usecase

import (
	"context"
	"strings"
	"time"

	"si-prima/internal/cache"
	"si-prima/internal/model"
	"si-prima/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrEmailTerdaftar     = errors.New("email sudah terdaftar")
	ErrPasswordPendek     = errors.New("password minimal 6 karakter")
	ErrTokenInvalid       = errors.New("token tidak valid atau kadaluwarsa")
)

const revokedPrefix = "revoked:"

// Principal adalah user yang sedang login menurut layanan auth.
type Principal struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"user_metadata"`
}

type accessClaims struct {
	Email    string            `json:"email"`
	Metadata map[string]string `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

type AuthUsecase struct {
	repo   repository.AkunRepository
	store  cache.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthUsecase(repo repository.AkunRepository, store cache.Store, secret string, ttl time.Duration) *AuthUsecase {
	return &AuthUsecase{repo: repo, store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *AuthUsecase) SignUp(ctx context.Context, email, password string, metadata map[string]string) (*Principal, error) {
	email = normalizeEmail(email)
	if len(password) < 6 {
		return nil, ErrPasswordPendek
	}

	// 1. Pastikan email belum dipakai
	if _, err := u.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTerdaftar
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "gagal memeriksa akun")
	}

	// 2. Hashing Password
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "gagal mengenkripsi password")
	}

	// 3. Simpan akun
	akun := model.Akun{Email: email, Password: string(hashed), Metadata: metadata}
	if err := u.repo.Create(ctx, &akun); err != nil {
		return nil, errors.Wrap(err, "gagal menyimpan akun")
	}
	return &Principal{ID: akun.ID, Email: akun.Email, Metadata: akun.Metadata}, nil
}

// DeleteAccount menghapus akun login, dipakai untuk membatalkan registrasi yang gagal separuh jalan.
func (u *AuthUsecase) DeleteAccount(ctx context.Context, email string) error {
	if err := u.repo.DeleteByEmail(ctx, normalizeEmail(email)); err != nil {
		return errors.Wrap(err, "gagal menghapus akun")
	}
	return nil
}

func (u *AuthUsecase) SignIn(ctx context.Context, email, password string) (string, *Principal, error) {
	// 1. Cari akun berdasarkan email
	akun, err := u.repo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, errors.Wrap(err, "gagal mengambil akun")
	}

	// 2. Bandingkan Password (Input vs Hash di DB)
	if err := bcrypt.CompareHashAndPassword([]byte(akun.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	// 3. Buat Token JWT
	now := u.now()
	claims := accessClaims{
		Email:    akun.Email,
		Metadata: akun.Metadata,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   akun.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return "", nil, errors.Wrap(err, "gagal membuat token")
	}

	return token, &Principal{ID: akun.ID, Email: akun.Email, Metadata: akun.Metadata}, nil
}

func (u *AuthUsecase) parse(tokenString string) (*accessClaims, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return u.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(u.now))
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// GetUser memvalidasi token dan memastikan token belum di-logout.
func (u *AuthUsecase) GetUser(ctx context.Context, tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}
	claims, err := u.parse(tokenString)
	if err != nil {
		return nil, err
	}

	_, revoked, err := u.store.Get(ctx, revokedPrefix+claims.ID)
	if err != nil {
		return nil, errors.Wrap(err, "gagal memeriksa status token")
	}
	if revoked {
		return nil, ErrTokenInvalid
	}

	return &Principal{ID: claims.Subject, Email: claims.Email, Metadata: claims.Metadata}, nil
}

// SignOut mem-blacklist id token sampai token itu kedaluwarsa.
func (u *AuthUsecase) SignOut(ctx context.Context, tokenString string) error {
	claims, err := u.parse(tokenString)
	if err != nil {
		// Token sudah tidak berlaku, tidak ada yang perlu dicabut
		return nil
	}
	ttl := u.ttl
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(u.now())
	}
	if ttl <= 0 {
		return nil
	}
	return u.store.Set(ctx, revokedPrefix+claims.ID, []byte("logout"), ttl)
}
