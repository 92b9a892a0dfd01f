package core

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// MirrorConfig holds credentials for the bitable mirror (Feishu/Lark).
// The mirror requires an application-credential exchange for a short-lived
// tenant token before records can be created.
type MirrorConfig struct {
	AppID        string `yaml:"app_id"`
	AppSecret    string `yaml:"app_secret"`
	AppToken     string `yaml:"app_token"`
	PaperTableID string `yaml:"paper_table_id"`
	BaseURL      string `yaml:"base_url"`
}

// Config holds all configuration values for paperdesk.
type Config struct {
	// Chat endpoint (OpenAI-compatible; defaults target DeepSeek)
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	ChatModel   string        `yaml:"chat_model"`
	Temperature float32       `yaml:"temperature"`
	AITimeout   time.Duration `yaml:"ai_timeout"`

	// Storage
	DatabasePath   string `yaml:"database_path"`
	MigrationsPath string `yaml:"migrations_path"`
	LibraryDir     string `yaml:"library_dir"`

	// SaaS mirror
	Mirror MirrorConfig `yaml:"mirror"`

	// Logging
	LogFile string `yaml:"log_file"`
	DevMode bool   `yaml:"dev_mode"`

	// WarnChars is the document length above which the UI warns that
	// processing may be slow (the chat model context is finite).
	WarnChars int `yaml:"warn_chars"`
}

// Defaults for configuration values.
const (
	DefaultBaseURL        = "https://api.deepseek.com/v1"
	DefaultChatModel      = "deepseek-chat"
	DefaultTemperature    = 0.1
	DefaultAITimeout      = 120 * time.Second
	DefaultDatabasePath   = "paperdesk.db"
	DefaultMigrationsPath = "file://db/migrations"
	DefaultLibraryDir     = "paper_library"
	DefaultLogFile        = "paperdesk.log"
	DefaultMirrorBaseURL  = "https://open.feishu.cn"
	DefaultWarnChars      = 100000
)

// ConfigFileName is the optional YAML overlay read by LoadConfig when present
// in the working directory. Values set in the file take precedence over
// environment variables.
const ConfigFileName = "paperdesk.yaml"

// Helper function to get environment variable with default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Helper function to parse integer environment variable with default value
func parseIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Helper function to parse float32 environment variable with default value
func parseFloat32Env(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatValue)
		}
	}
	return defaultValue
}

// Helper function to parse duration environment variable with default value
func parseDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// LoadConfig reads configuration from the environment, applies the optional
// paperdesk.yaml overlay if present, and validates the result.
//
// The caller is expected to have loaded a .env file (godotenv) beforehand.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIKey:      os.Getenv("DEEPSEEK_API_KEY"),
		BaseURL:     getEnvOrDefault("CHAT_BASE_URL", DefaultBaseURL),
		ChatModel:   getEnvOrDefault("CHAT_MODEL", DefaultChatModel),
		Temperature: parseFloat32Env("CHAT_TEMPERATURE", DefaultTemperature),
		AITimeout:   parseDurationEnv("AI_TIMEOUT", DefaultAITimeout),

		DatabasePath:   getEnvOrDefault("DATABASE_PATH", DefaultDatabasePath),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", DefaultMigrationsPath),
		LibraryDir:     getEnvOrDefault("LIBRARY_DIR", DefaultLibraryDir),

		Mirror: MirrorConfig{
			AppID:        os.Getenv("FEISHU_APP_ID"),
			AppSecret:    os.Getenv("FEISHU_APP_SECRET"),
			AppToken:     os.Getenv("FEISHU_APP_TOKEN"),
			PaperTableID: os.Getenv("FEISHU_PAPER_TABLE_ID"),
			BaseURL:      getEnvOrDefault("FEISHU_BASE_URL", DefaultMirrorBaseURL),
		},

		LogFile:   getEnvOrDefault("LOG_FILE", DefaultLogFile),
		DevMode:   os.Getenv("DEV_MODE") == "true",
		WarnChars: parseIntEnv("WARN_CHARS", DefaultWarnChars),
	}

	if err := applyConfigFile(cfg, ConfigFileName); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyConfigFile overlays values from a YAML file onto cfg.
// A missing file is not an error; an unparsable one is.
func applyConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return ErrBadConfigFile(path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return ErrBadConfigFile(path, err)
	}
	return nil
}

// Validate checks that required values are present and sane.
// Mirror credentials are required: the archival contract needs both sinks.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey()
	}

	if u, err := url.Parse(c.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL(c.BaseURL, "must be an absolute http(s) URL")
	}

	switch {
	case c.Mirror.AppID == "":
		return ErrMissingMirror("FEISHU_APP_ID")
	case c.Mirror.AppSecret == "":
		return ErrMissingMirror("FEISHU_APP_SECRET")
	case c.Mirror.AppToken == "":
		return ErrMissingMirror("FEISHU_APP_TOKEN")
	case c.Mirror.PaperTableID == "":
		return ErrMissingMirror("FEISHU_PAPER_TABLE_ID")
	}

	if c.DatabasePath == "" {
		return ErrMissingConfig("DATABASE_PATH")
	}
	if c.LibraryDir == "" {
		return ErrMissingConfig("LIBRARY_DIR")
	}

	return nil
}
