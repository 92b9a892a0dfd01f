package core

import (
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeMissingAPIKey   = "MISSING_API_KEY"
	ErrCodeMissingMirror   = "MISSING_MIRROR_CREDENTIALS"
	ErrCodeInvalidBaseURL  = "INVALID_BASE_URL"
	ErrCodeMissingConfig   = "MISSING_CONFIG"
	ErrCodeBadConfigFile   = "BAD_CONFIG_FILE"
	ErrCodeBadLibraryDir   = "BAD_LIBRARY_DIR"
	ErrCodeBadDatabasePath = "BAD_DATABASE_PATH"
)

// ErrMissingAPIKey returns an error for a missing chat endpoint API key.
func ErrMissingAPIKey() *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingAPIKey,
		Message: "Missing chat API key",
		Action:  "Set DEEPSEEK_API_KEY in your .env file",
	}
}

// ErrMissingMirror returns an error for incomplete SaaS mirror credentials.
func ErrMissingMirror(field string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingMirror,
		Message: fmt.Sprintf("Missing bitable mirror credential: %s", field),
		Action:  "Set FEISHU_APP_ID, FEISHU_APP_SECRET, FEISHU_APP_TOKEN and FEISHU_PAPER_TABLE_ID in your .env file",
	}
}

// ErrInvalidBaseURL returns an error for an unusable chat endpoint URL.
func ErrInvalidBaseURL(url, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidBaseURL,
		Message: fmt.Sprintf("Invalid CHAT_BASE_URL '%s': %s", url, reason),
		Action:  "Set CHAT_BASE_URL to a valid OpenAI-compatible endpoint (e.g., https://api.deepseek.com/v1)",
	}
}

// ErrMissingConfig returns an error for missing required configuration.
func ErrMissingConfig(varName string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingConfig,
		Message: fmt.Sprintf("Missing required configuration: %s", varName),
		Action:  fmt.Sprintf("Set %s in your .env file", varName),
	}
}

// ErrBadConfigFile returns an error for an unreadable or unparsable config file.
func ErrBadConfigFile(path string, err error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeBadConfigFile,
		Message: fmt.Sprintf("Cannot read config file %s: %v", path, err),
		Action:  "Fix or remove the YAML config file",
	}
}

// IsConfigError checks if an error is a ConfigError and returns it if so.
func IsConfigError(err error) (*ConfigError, bool) {
	if configErr, ok := err.(*ConfigError); ok {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a ConfigError.
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
