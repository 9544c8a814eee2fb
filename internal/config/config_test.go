package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, expected 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, expected sqlite", cfg.Database.Driver)
	}
	if cfg.Classifier.Model != "gpt-4o-mini" {
		t.Errorf("Model = %q, expected gpt-4o-mini", cfg.Classifier.Model)
	}
	if cfg.Sentiment.RatingWeight != 0.48 {
		t.Errorf("RatingWeight = %v, expected 0.48", cfg.Sentiment.RatingWeight)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis should be disabled by default")
	}
}

func TestLoad_PartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
classifier:
  provider: anthropic
  api_key: test-key
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, expected 9090", cfg.Server.Port)
	}
	if cfg.Classifier.Provider != "anthropic" {
		t.Errorf("Provider = %q, expected anthropic", cfg.Classifier.Provider)
	}
	if cfg.Classifier.MaxTokens != 10 {
		t.Errorf("MaxTokens = %d, expected default 10", cfg.Classifier.MaxTokens)
	}
	if cfg.Sentiment.ReclassifySchedule != "*/5 * * * *" {
		t.Errorf("ReclassifySchedule = %q, expected default", cfg.Sentiment.ReclassifySchedule)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("CLASSIFIER_PROVIDER", "ollama")
	t.Setenv("SENTIMENT_RATING_WEIGHT", "0.6")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("Port = %q, expected 3000", cfg.Server.Port)
	}
	if cfg.Classifier.Provider != "ollama" {
		t.Errorf("Provider = %q, expected ollama", cfg.Classifier.Provider)
	}
	if cfg.Sentiment.RatingWeight != 0.6 {
		t.Errorf("RatingWeight = %v, expected 0.6", cfg.Sentiment.RatingWeight)
	}
}

func TestLoad_InvalidRatingWeightIgnored(t *testing.T) {
	t.Setenv("SENTIMENT_RATING_WEIGHT", "1.5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sentiment.RatingWeight != 0.48 {
		t.Errorf("RatingWeight = %v, expected default 0.48", cfg.Sentiment.RatingWeight)
	}
}

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		addr     string
		password string
		db       int
	}{
		{
			name: "plain host port",
			url:  "redis://localhost:6379",
			addr: "localhost:6379",
		},
		{
			name:     "with password and db",
			url:      "redis://:secret@redis.internal:6380/2",
			addr:     "redis.internal:6380",
			password: "secret",
			db:       2,
		},
		{
			name: "with db only",
			url:  "redis://localhost:6379/1",
			addr: "localhost:6379",
			db:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.parseRedisURL(tt.url)

			if cfg.Redis.Addr != tt.addr {
				t.Errorf("Addr = %q, expected %q", cfg.Redis.Addr, tt.addr)
			}
			if cfg.Redis.Password != tt.password {
				t.Errorf("Password = %q, expected %q", cfg.Redis.Password, tt.password)
			}
			if cfg.Redis.DB != tt.db {
				t.Errorf("DB = %d, expected %d", cfg.Redis.DB, tt.db)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Port = "8181"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server.Port != "8181" {
		t.Errorf("Port = %q, expected 8181", loaded.Server.Port)
	}
}
