package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read from the environment once at startup
type Config struct {
	Port      string
	StatePath string
	LogLevel  string
	AppEnv    string

	AllowedOrigins string

	// Remote mirror; empty DatabaseURL disables it
	DatabaseURL        string
	MirrorQueueSize    int
	MirrorTimeout      time.Duration
	RemoteSyncInterval time.Duration

	// Snapshot backup to R2; empty R2Bucket disables it
	BackupInterval      time.Duration
	CloudflareAccountID string
	R2AccessKeyID       string
	R2AccessKeySecret   string
	R2Bucket            string
	CDNBaseURL          string
}

func (c Config) MirrorEnabled() bool { return c.DatabaseURL != "" }
func (c Config) BackupEnabled() bool { return c.R2Bucket != "" }

func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                envOr("PORT", "5200"),
		StatePath:           envOr("STATE_PATH", "data/state.json"),
		LogLevel:            envOr("LOG_LEVEL", "info"),
		AppEnv:              envOr("APP_ENV", "production"),
		AllowedOrigins:      normalizeOrigins(envOr("ALLOWED_ORIGINS", "http://localhost:3000")),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		CloudflareAccountID: os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		R2AccessKeyID:       os.Getenv("R2_ACCESS_KEY_ID"),
		R2AccessKeySecret:   os.Getenv("R2_ACCESS_KEY_SECRET"),
		R2Bucket:            os.Getenv("R2_BUCKET_NAME"),
		CDNBaseURL:          os.Getenv("CDN_BASE_URL"),
	}

	var err error
	if cfg.MirrorQueueSize, err = envInt("MIRROR_QUEUE_SIZE", 256); err != nil {
		return cfg, err
	}
	if cfg.MirrorTimeout, err = envDuration("MIRROR_TIMEOUT", 15*time.Second); err != nil {
		return cfg, err
	}
	if cfg.RemoteSyncInterval, err = envDuration("REMOTE_SYNC_INTERVAL", 15*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.BackupInterval, err = envDuration("BACKUP_INTERVAL", 6*time.Hour); err != nil {
		return cfg, err
	}

	if cfg.BackupEnabled() && cfg.CloudflareAccountID == "" {
		return cfg, fmt.Errorf("CLOUDFLARE_ACCOUNT_ID is required when R2_BUCKET_NAME is set")
	}
	if cfg.CDNBaseURL == "" && cfg.CloudflareAccountID != "" {
		cfg.CDNBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.CloudflareAccountID)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

// normalizeOrigins trims spaces around each comma-separated origin
func normalizeOrigins(raw string) string {
	parts := strings.Split(raw, ",")
	origins := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return strings.Join(origins, ",")
}
