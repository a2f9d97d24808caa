package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "leo_tolstoy", false},
		{"Valid With Hyphen", "anna-k", false},
		{"Minimum Length", "abc", false},
		{"Too Short", "ab", true},
		{"Too Long", "a234567890123456789012345678901", true},
		{"Leading Underscore", "_anna", true},
		{"Trailing Hyphen", "anna-", true},
		{"Invalid Characters", "anna karenina", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "leo@example.com", false},
		{"Valid Subdomain", "leo@mail.example.com", false},
		{"Missing At", "leo.example.com", true},
		{"Missing Domain", "leo@", true},
		{"Missing TLD", "leo@example", true},
		{"Whitespace", "leo @example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Correct-Horse7battery", false},
		{"Too Short", "Ab1!short", true},
		{"No Uppercase", "lowercase-only-77", true},
		{"No Lowercase", "UPPERCASE-ONLY-77", true},
		{"No Digit", "No-Digits-Here!", true},
		{"No Special", "NoSpecialChars77", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGroupSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"Valid", "cat-pictures", false},
		{"Too Short", "ab", true},
		{"Uppercase", "Cat-Pictures", true},
		{"Leading Hyphen", "-cats", true},
		{"Reserved", "profile", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroupSlug(tt.slug)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
