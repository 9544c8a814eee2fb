package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Sentiment  SentimentConfig  `yaml:"sentiment"`
	Redis      RedisConfig      `yaml:"redis"`
}

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Mode     string `yaml:"mode"`      // debug, release, test
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

// ClassifierConfig holds the connection settings for the external
// text-classification backend.
type ClassifierConfig struct {
	Provider       string  `yaml:"provider"` // openai, azure, anthropic, ollama, gemini
	BaseURL        string  `yaml:"base_url"`
	APIKey         string  `yaml:"api_key"`
	Model          string  `yaml:"model"`
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// SentimentConfig tunes the sentiment resolution policy.
type SentimentConfig struct {
	// RatingWeight is the share of the judgment the classifier is asked to
	// base on the rating category (the rest comes from the comment text).
	// It is a prompt-level hint, not an enforced blend.
	RatingWeight       float64 `yaml:"rating_weight"`
	ReclassifySchedule string  `yaml:"reclassify_schedule"` // cron expression
	ReclassifyBatch    int     `yaml:"reclassify_batch"`
	MaxReclassify      int     `yaml:"max_reclassify"`
}

// RedisConfig for the optional async reclassification queue
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.applyDefaults()
	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			Port:     "8080",
			Mode:     "debug",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "edupulse.db",
		},
		JWT: JWTConfig{
			Secret:     "edupulse-secret-key-change-in-production",
			ExpireHour: 24,
		},
		Classifier: ClassifierConfig{
			Provider:       "openai",
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			MaxTokens:      10,
			Temperature:    0.2,
			TimeoutSeconds: 15,
		},
		Sentiment: SentimentConfig{
			RatingWeight:       0.48,
			ReclassifySchedule: "*/5 * * * *",
			ReclassifyBatch:    10,
			MaxReclassify:      3,
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			DB:      0,
		},
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = def.Server.LogLevel
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = def.Database.DSN
	}
	if c.JWT.ExpireHour == 0 {
		c.JWT.ExpireHour = def.JWT.ExpireHour
	}
	if c.Classifier.Provider == "" {
		c.Classifier.Provider = def.Classifier.Provider
	}
	if c.Classifier.Model == "" {
		c.Classifier.Model = def.Classifier.Model
	}
	if c.Classifier.MaxTokens == 0 {
		c.Classifier.MaxTokens = def.Classifier.MaxTokens
	}
	if c.Classifier.Temperature == 0 {
		c.Classifier.Temperature = def.Classifier.Temperature
	}
	if c.Classifier.TimeoutSeconds == 0 {
		c.Classifier.TimeoutSeconds = def.Classifier.TimeoutSeconds
	}
	if c.Sentiment.RatingWeight == 0 {
		c.Sentiment.RatingWeight = def.Sentiment.RatingWeight
	}
	if c.Sentiment.ReclassifySchedule == "" {
		c.Sentiment.ReclassifySchedule = def.Sentiment.ReclassifySchedule
	}
	if c.Sentiment.ReclassifyBatch == 0 {
		c.Sentiment.ReclassifyBatch = def.Sentiment.ReclassifyBatch
	}
	if c.Sentiment.MaxReclassify == 0 {
		c.Sentiment.MaxReclassify = def.Sentiment.MaxReclassify
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if level := os.Getenv("SERVER_LOG_LEVEL"); level != "" {
		c.Server.LogLevel = level
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if provider := os.Getenv("CLASSIFIER_PROVIDER"); provider != "" {
		c.Classifier.Provider = provider
	}
	if baseURL := os.Getenv("CLASSIFIER_BASE_URL"); baseURL != "" {
		c.Classifier.BaseURL = baseURL
	}
	if apiKey := os.Getenv("CLASSIFIER_API_KEY"); apiKey != "" {
		c.Classifier.APIKey = apiKey
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" && c.Classifier.APIKey == "" {
		c.Classifier.APIKey = apiKey
	}
	if model := os.Getenv("CLASSIFIER_MODEL"); model != "" {
		c.Classifier.Model = model
	}
	if weight := os.Getenv("SENTIMENT_RATING_WEIGHT"); weight != "" {
		if w, err := strconv.ParseFloat(weight, 64); err == nil && w > 0 && w < 1 {
			c.Sentiment.RatingWeight = w
		}
	}
	// Redis URL override (format: redis://:password@host:port/db)
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.Enabled = true
		c.parseRedisURL(redisURL)
	}
}

// parseRedisURL parses a Redis URL and sets config values
// Format: redis://:password@host:port/db
func (c *Config) parseRedisURL(redisURL string) {
	url := strings.TrimPrefix(redisURL, "redis://")

	if atIdx := strings.Index(url, "@"); atIdx != -1 {
		authPart := url[:atIdx]
		url = url[atIdx+1:]
		if colonIdx := strings.Index(authPart, ":"); colonIdx != -1 {
			c.Redis.Password = authPart[colonIdx+1:]
		}
	}

	if slashIdx := strings.LastIndex(url, "/"); slashIdx != -1 {
		dbStr := url[slashIdx+1:]
		url = url[:slashIdx]
		if db, err := strconv.Atoi(dbStr); err == nil {
			c.Redis.DB = db
		}
	}

	c.Redis.Addr = url
}

func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
