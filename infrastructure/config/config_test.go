package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "herdly.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file failed: %v", err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %v, want default", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "herdly" {
		t.Errorf("Mongo.Database = %v, want herdly", cfg.Mongo.Database)
	}
	if cfg.Logging.Level != slog.LevelInfo {
		t.Errorf("Logging.Level = %v, want info", cfg.Logging.Level)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
mongo:
  uri: mongodb://db.example:27017
  database: pasture
  connect_timeout_seconds: 20
  ping_timeout_seconds: 3
logging:
  level: debug
  dir: /var/log/herdly
  max_size_mb: 5
  max_backups: 2
  max_age_days: 7
  compress: false
  add_source: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Mongo.URI != "mongodb://db.example:27017" {
		t.Errorf("Mongo.URI = %v", cfg.Mongo.URI)
	}
	if cfg.Mongo.Database != "pasture" {
		t.Errorf("Mongo.Database = %v", cfg.Mongo.Database)
	}
	if cfg.Mongo.ConnectTimeout != 20*time.Second {
		t.Errorf("Mongo.ConnectTimeout = %v, want 20s", cfg.Mongo.ConnectTimeout)
	}
	if cfg.Mongo.PingTimeout != 3*time.Second {
		t.Errorf("Mongo.PingTimeout = %v, want 3s", cfg.Mongo.PingTimeout)
	}
	if cfg.Logging.Level != slog.LevelDebug {
		t.Errorf("Logging.Level = %v, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Dir != "/var/log/herdly" {
		t.Errorf("Logging.Dir = %v", cfg.Logging.Dir)
	}
	if cfg.Logging.MaxSizeMB != 5 || cfg.Logging.MaxBackups != 2 || cfg.Logging.MaxAgeDays != 7 {
		t.Errorf("rotation settings = %d/%d/%d, want 5/2/7",
			cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays)
	}
	if cfg.Logging.Compress {
		t.Error("Compress should be false")
	}
	if !cfg.Logging.AddSource {
		t.Error("AddSource should be true")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
mongo:
  database: pasture
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Mongo.Database != "pasture" {
		t.Errorf("Mongo.Database = %v, want pasture", cfg.Mongo.Database)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" {
		t.Errorf("Mongo.URI = %v, want default", cfg.Mongo.URI)
	}
	if !cfg.Logging.Compress {
		t.Error("Compress default should survive a partial file")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "mongo: ["},
		{"bad level", "logging:\n  level: loud"},
		{"negative timeout", "mongo:\n  connect_timeout_seconds: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load should have failed")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}
