package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// HandlePattern defines a GitHub login: alphanumerics separated by single hyphens,
// never starting or ending with a hyphen.
var HandlePattern = regexp.MustCompile(`^[a-zA-Z0-9]+(-[a-zA-Z0-9]+)*$`)

// MaxHandleLength is the longest login GitHub accepts.
const MaxHandleLength = 39

// ValidateHandle checks if a handle matches the allowed pattern.
func ValidateHandle(handle string) bool {
	if handle == "" || len(handle) > MaxHandleLength {
		return false
	}
	return HandlePattern.MatchString(handle)
}

// NormalizeHandle trims surrounding whitespace from user input.
// Case is preserved: favorites are keyed by the handle exactly as typed.
func NormalizeHandle(handle string) string {
	return strings.TrimSpace(handle)
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
