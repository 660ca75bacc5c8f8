package validation

import (
	"strings"
	"testing"
)

func TestValidateHandle(t *testing.T) {
	tests := []struct {
		name   string
		handle string
		want   bool
	}{
		{"simple", "octocat", true},
		{"with hyphen", "mona-lisa", true},
		{"mixed case", "OctoCat", true},
		{"numbers only", "12345", true},
		{"single char", "a", true},
		{"max length", strings.Repeat("a", 39), true},
		{"too long", strings.Repeat("a", 40), false},
		{"empty string", "", false},
		{"leading hyphen", "-octocat", false},
		{"trailing hyphen", "octocat-", false},
		{"double hyphen", "octo--cat", false},
		{"underscore", "octo_cat", false},
		{"contains space", "octo cat", false},
		{"contains slash", "octo/cat", false},
		{"path traversal attempt", "../etc/passwd", false},
		{"query injection", "octocat?x=1", false},
		{"unicode", "日本語", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateHandle(tt.handle); got != tt.want {
				t.Errorf("ValidateHandle(%q) = %v, want %v", tt.handle, got, tt.want)
			}
		})
	}
}

func TestNormalizeHandle(t *testing.T) {
	if got := NormalizeHandle("  OctoCat \n"); got != "OctoCat" {
		t.Errorf("NormalizeHandle() = %q, want %q", got, "OctoCat")
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		valid   bool
		wantMsg string
	}{
		{"valid https", "https://api.github.com/users/", true, ""},
		{"valid http", "http://localhost:8080/users/", true, ""},
		{"empty string", "", false, "URL is required"},
		{"javascript scheme", "javascript:alert(1)", false, "URL must use http:// or https:// scheme"},
		{"ftp scheme", "ftp://example.com", false, "URL must use http:// or https:// scheme"},
		{"no host", "https://", false, "URL must have a valid host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := ValidateURL(tt.url)
			if valid != tt.valid {
				t.Errorf("ValidateURL(%q) valid = %v, want %v", tt.url, valid, tt.valid)
			}
			if msg != tt.wantMsg {
				t.Errorf("ValidateURL(%q) msg = %q, want %q", tt.url, msg, tt.wantMsg)
			}
		})
	}
}
