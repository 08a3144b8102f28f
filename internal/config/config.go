// ABOUTME: Daylog configuration management with backend selection.
// ABOUTME: Handles the JSON config file, DAYLOG_* overrides, and storage/backup factories.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/daylog/internal/backup"
	"github.com/harperreed/daylog/internal/charm"
	"github.com/harperreed/daylog/internal/storage"
)

// DefaultListen is the HTTP API address used by `daylog serve`.
const DefaultListen = "127.0.0.1:8080"

// Config stores daylog configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "charm", or "memory".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data.
	// SQLite puts daylog.db here and filesystem backups go under backups/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/daylog.
	DataDir string `json:"data_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty"`

	// Listen is the HTTP API address.
	Listen string `json:"listen,omitempty"`

	Backup *BackupConfig `json:"backup,omitempty"`
}

// BackupConfig selects where backup snapshots are written.
type BackupConfig struct {
	Driver string          `json:"driver,omitempty"` // "fs" (default) or "s3"
	Dir    string          `json:"dir,omitempty"`    // overrides the filesystem backup directory
	S3     backup.S3Config `json:"s3"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListen returns the HTTP API address.
func (c *Config) GetListen() string {
	if c.Listen == "" {
		return DefaultListen
	}
	return c.Listen
}

// GetBackupDriver returns the backup sink driver, defaulting to "fs".
func (c *Config) GetBackupDriver() string {
	if c.Backup == nil || c.Backup.Driver == "" {
		return "fs"
	}
	return c.Backup.Driver
}

// GetBackupDir returns the filesystem backup directory.
func (c *Config) GetBackupDir() string {
	if c.Backup != nil && c.Backup.Dir != "" {
		return ExpandPath(c.Backup.Dir)
	}
	return filepath.Join(c.GetDataDir(), "backups")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Backend implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Backend, error) {
	backend := c.GetBackend()

	switch backend {
	case "sqlite":
		dbPath := filepath.Join(c.GetDataDir(), "daylog.db")
		return storage.Open(dbPath)
	case "charm":
		client, err := charm.InitClient()
		if err != nil {
			return nil, err
		}
		return client, nil
	case "memory":
		return storage.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenBackupSink creates the configured backup destination.
func (c *Config) OpenBackupSink(ctx context.Context) (backup.Sink, error) {
	switch driver := c.GetBackupDriver(); driver {
	case "fs":
		return backup.NewFSSink(c.GetBackupDir())
	case "s3":
		cfg := c.Backup.S3
		if cfg.AccessKeyID == "" {
			cfg.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
			cfg.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
		}
		return backup.NewS3Sink(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backup driver: %q", driver)
	}
}

// ApplyEnv overrides settings from DAYLOG_* environment variables.
//
//	DAYLOG_BACKEND, DAYLOG_DATA_DIR, DAYLOG_LOG_LEVEL, DAYLOG_LISTEN
//	DAYLOG_BACKUP_DRIVER, DAYLOG_BACKUP_DIR
//	DAYLOG_BACKUP_S3_BUCKET, DAYLOG_BACKUP_S3_REGION, DAYLOG_BACKUP_S3_PREFIX
//	DAYLOG_BACKUP_S3_ENDPOINT, DAYLOG_BACKUP_S3_PATH_STYLE=true|false
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (optional)
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Backend, "DAYLOG_BACKEND")
	setFromEnv(&c.DataDir, "DAYLOG_DATA_DIR")
	setFromEnv(&c.LogLevel, "DAYLOG_LOG_LEVEL")
	setFromEnv(&c.Listen, "DAYLOG_LISTEN")

	b := c.Backup
	if b == nil {
		b = &BackupConfig{}
	}
	setFromEnv(&b.Driver, "DAYLOG_BACKUP_DRIVER")
	setFromEnv(&b.Dir, "DAYLOG_BACKUP_DIR")
	setFromEnv(&b.S3.Bucket, "DAYLOG_BACKUP_S3_BUCKET")
	setFromEnv(&b.S3.Region, "DAYLOG_BACKUP_S3_REGION")
	setFromEnv(&b.S3.Prefix, "DAYLOG_BACKUP_S3_PREFIX")
	setFromEnv(&b.S3.Endpoint, "DAYLOG_BACKUP_S3_ENDPOINT")
	if v := os.Getenv("DAYLOG_BACKUP_S3_PATH_STYLE"); v != "" {
		b.S3.PathStyle = strings.EqualFold(v, "true")
	}

	if c.Backup != nil || *b != (BackupConfig{}) {
		c.Backup = b
	}
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "daylog", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
