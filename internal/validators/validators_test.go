package validators

import (
	"strings"
	"testing"
	"time"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"12.5", 12.5},
		{" 7 ", 7},
		{"-3", -3},
		{"abc", 0},
		{"1,5", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e2", 100},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFloat(tt.in); got != tt.want {
				t.Errorf("ParseFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"99999999999999999999", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseID(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseID(%q) = %d, %v, want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{" 2023-12-31 ", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"", fallback},
		{"2023-02-30", fallback},
		{"31/12/2023", fallback},
		{"yesterday", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseDate(tt.in, fallback); !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Bob@Example.COM "); got != "bob@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		wantErr  error
	}{
		{"valid", "alice", "alice@example.com", nil},
		{"blank is left to the caller", "", "", nil},
		{"long username", strings.Repeat("a", MaxUsernameLength+1), "a@example.com", ErrUsernameTooLong},
		{"long email", "alice", strings.Repeat("a", MaxEmailLength) + "@x.io", ErrEmailTooLong},
		{"no at sign", "alice", "alice.example.com", ErrInvalidEmail},
		{"space", "alice", "al ice@example.com", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateSignup(tt.username, tt.email); err != tt.wantErr {
				t.Errorf("ValidateSignup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
