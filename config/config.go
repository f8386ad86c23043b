package config

import (
	"os"
	"strconv"
	"time"
)

// Config menampung seluruh pengaturan aplikasi yang dibaca dari environment (.env)
type Config struct {
	AppPort string

	DBDriver string // mysql atau postgres
	DBDSN    string

	JWTSecret string
	JWTTTL    time.Duration

	// Kosongkan REDIS_ADDR untuk memakai cache in-memory
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	SessionCacheTTL time.Duration

	StorageDir       string
	StorageBucket    string
	StoragePublicURL string

	BerkasJenisFile string
	LogFilePath     string

	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailFrom     string
	MailAdmin    string
}

func Load() *Config {
	port := GetEnv("APP_PORT", "3000")

	return &Config{
		AppPort: port,

		DBDriver: GetEnv("DB_DRIVER", "mysql"),
		// Format MySQL: user:password@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local
		DBDSN: GetEnv("DB_DSN", "root:@tcp(127.0.0.1:3306)/si_prima?charset=utf8mb4&parseTime=True&loc=Local"),

		JWTSecret: GetEnv("JWT_SECRET", "rahasia_negara"),
		JWTTTL:    GetEnvAsDuration("JWT_TTL", 24*time.Hour),

		RedisAddr:       GetEnv("REDIS_ADDR", ""),
		RedisPassword:   GetEnv("REDIS_PASSWORD", ""),
		RedisDB:         GetEnvAsInt("REDIS_DB", 0),
		SessionCacheTTL: GetEnvAsDuration("SESSION_CACHE_TTL", 30*time.Minute),

		StorageDir:       GetEnv("STORAGE_DIR", "./storage"),
		StorageBucket:    GetEnv("STORAGE_BUCKET", "berkas_pegawai"),
		StoragePublicURL: GetEnv("STORAGE_PUBLIC_URL", "http://localhost:"+port+"/storage/v1"),

		BerkasJenisFile: GetEnv("BERKAS_JENIS_FILE", ""),
		LogFilePath:     GetEnv("LOG_FILE_PATH", ""),

		MailHost:     GetEnv("MAIL_HOST", ""),
		MailPort:     GetEnvAsInt("MAIL_PORT", 587),
		MailUser:     GetEnv("MAIL_USER", ""),
		MailPassword: GetEnv("MAIL_PASSWORD", ""),
		MailFrom:     GetEnv("MAIL_FROM", "noreply@si-prima.local"),
		MailAdmin:    GetEnv("MAIL_ADMIN", ""),
	}
}

// Helper function to get environment variable with fallback default value
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get environment variable as integer with fallback
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsDuration menerima format "30m" / "24h" atau angka detik
func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if i, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(i) * time.Second
	}
	return fallback
}
