package errors

import (
	"strings"
	"testing"
)

func TestValidatePatternName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Square Grid Pattern", false},
		{"punctuation", "Herringbone (45°)", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"control char", "grid\x01", true},
		{"newline", "grid\nx", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatternName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePatternName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWallName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"east", false},
		{"floor", false},
		{"bath-wall_2", false},

		{"", true},
		{"East", true},
		{"2nd", true},
		{"a/b", true},
		{strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		err := ValidateWallName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateWallName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidInput) {
			t.Errorf("ValidateWallName(%q) code = %v", tt.input, GetCode(err))
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "catalogs/patterns.json", false},
		{"absolute", "/etc/tilelay/patterns.json", false},
		{"empty", "", true},
		{"traversal", "../patterns.json", true},
		{"backslash", "catalogs\\patterns.json", true},
		{"null byte", "a\x00b", true},
		{"too long", strings.Repeat("a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
