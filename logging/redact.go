package logging

import (
	"regexp"
	"strings"
)

// RedactedPlaceholder replaces sensitive values in log output.
const RedactedPlaceholder = "[REDACTED]"

// secretPatterns are compiled once at package initialization.
var secretPatterns = []*regexp.Regexp{
	// DeepSeek and other OpenAI-compatible API keys
	regexp.MustCompile(`(?i)(sk-[a-zA-Z0-9_-]{20,})`),
	// Feishu tenant access tokens
	regexp.MustCompile(`(?i)(t-[a-zA-Z0-9]{20,})`),
	// Feishu application secrets are opaque 32-char strings
	regexp.MustCompile(`(?i)([a-f0-9]{32})`),
	// Bearer headers of any origin
	regexp.MustCompile(`(?i)(bearer\s+[a-zA-Z0-9._-]{20,})`),
	// Generic credential assignments
	regexp.MustCompile(`(?i)(password\s*[:=]\s*[^\s,;]{8,})`),
	regexp.MustCompile(`(?i)(secret\s*[:=]\s*[^\s,;]{8,})`),
	regexp.MustCompile(`(?i)(token\s*[:=]\s*[^\s,;]{8,})`),
	regexp.MustCompile(`(?i)(api_key\s*[:=]\s*[^\s,;]{8,})`),
}

// secretFieldMarkers are substrings of field names that mark the whole
// value as sensitive regardless of its content.
var secretFieldMarkers = []string{
	"DEEPSEEK_API_KEY",
	"FEISHU_APP_SECRET",
	"APP_SECRET",
	"API_KEY",
	"PASSWORD",
	"SECRET",
	"TOKEN",
}

// RedactSecrets scans a string and replaces detected credentials.
//
// Example:
//
//	RedactSecrets("key is sk-abc123def456ghi789jkl012")
//	// "key is [REDACTED]"
func RedactSecrets(value string) string {
	if value == "" {
		return value
	}
	result := value
	for _, pattern := range secretPatterns {
		result = pattern.ReplaceAllString(result, RedactedPlaceholder)
	}
	return result
}

// IsSecretField reports whether a field name marks its value as sensitive.
//
// Example:
//
//	IsSecretField("FEISHU_APP_SECRET") // true
//	IsSecretField("paper_name")        // false
func IsSecretField(name string) bool {
	upper := strings.ToUpper(name)
	for _, marker := range secretFieldMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
