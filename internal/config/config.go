package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the base server configuration.
type Config struct {
	Host         string
	Port         string
	SQLiteDBPath string

	// UploadDir is the static-file root for uploaded media.
	UploadDir string
	// PublicBaseURL prefixes the URLs returned for uploaded files.
	// Defaults to http://<host>:<port>.
	PublicBaseURL string

	CORSAllowedOrigins []string

	// Backup job settings. An empty schedule disables the job.
	BackupSchedule string
	BackupDir      string
	BackupRetain   int
}

// fileConfig mirrors the optional content-hub.yaml. Environment variables
// take precedence over file values.
type fileConfig struct {
	Host               string   `yaml:"host"`
	Port               string   `yaml:"port"`
	SQLiteDBPath       string   `yaml:"sqlite_db_path"`
	UploadDir          string   `yaml:"upload_dir"`
	PublicBaseURL      string   `yaml:"public_base_url"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	BackupSchedule     string   `yaml:"backup_schedule"`
	BackupDir          string   `yaml:"backup_dir"`
	BackupRetain       int      `yaml:"backup_retain"`
}

// Load reads configuration from .env, content-hub.yaml and the environment,
// in increasing order of precedence, with defaults for everything.
func Load() (Config, error) {
	_ = godotenv.Load()

	file, err := loadFile(envString("CONTENT_HUB_CONFIG", "content-hub.yaml"))
	if err != nil {
		return Config{}, err
	}

	host := envString("HOST", fallback(file.Host, "0.0.0.0"))
	port := envString("PORT", fallback(file.Port, "3001"))

	cfg := Config{
		Host:           host,
		Port:           port,
		SQLiteDBPath:   envString("SQLITE_DB_PATH", fallback(file.SQLiteDBPath, "./data/content.db")),
		UploadDir:      envString("UPLOAD_DIR", fallback(file.UploadDir, "./data/uploads")),
		PublicBaseURL:  envString("PUBLIC_BASE_URL", fallback(file.PublicBaseURL, "http://"+host+":"+port)),
		BackupSchedule: envString("BACKUP_SCHEDULE", fallback(file.BackupSchedule, "0 3 * * *")),
		BackupDir:      envString("BACKUP_DIR", file.BackupDir),
		BackupRetain:   envInt("BACKUP_RETAIN", fallbackInt(file.BackupRetain, 7)),
	}

	cfg.CORSAllowedOrigins = envCSV("CORS_ALLOWED_ORIGINS")
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = file.CORSAllowedOrigins
	}

	if cfg.BackupRetain < 1 {
		return Config{}, fmt.Errorf("BACKUP_RETAIN must be at least 1")
	}

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var file fileConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return file, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return file, fmt.Errorf("parse %s: %w", path, err)
	}
	return file, nil
}

func fallback(val, def string) string {
	if val == "" {
		return def
	}
	return val
}

func fallbackInt(val, def int) int {
	if val == 0 {
		return def
	}
	return val
}

func envString(key, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func envInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func envCSV(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		result = append(result, trimmed)
	}
	return result
}
