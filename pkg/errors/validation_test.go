package errors

import (
	"strings"
	"testing"
)

func TestValidateElement(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "a", false},
		{"valid numeric", "42", false},
		{"valid with dash", "node-7", false},
		{"valid unicode", "ñandú", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 300), true},
		{"double quote", `a"b`, true},
		{"space", "a b", true},
		{"tab", "a\tb", true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElement(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElement(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidElement) {
				t.Errorf("ValidateElement(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidElement)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "trees/x.json", false},
		{"absolute", "/tmp/x.json", false},

		{"empty", "", true},
		{"null byte", "x\x00.json", true},
		{"control char", "x\x01.json", true},
		{"too long", strings.Repeat("a", 5000), true},
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
