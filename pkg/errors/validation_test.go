package errors

import (
	"testing"
)

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"white", "#FFFFFF", false},
		{"black", "#000000", false},
		{"lowercase", "#8fbc8f", false},
		{"mixed case", "#D2b48c", false},

		{"empty", "", true},
		{"missing hash", "FFFFFF", true},
		{"short form", "#FFF", true},
		{"too long", "#FFFFFFF", true},
		{"non-hex chars", "#GGGGGG", true},
		{"named color", "white", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFullName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Dana Levi", false},
		{"hebrew", "דנה לוי", false},
		{"with apostrophe", "O'Brien", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"control char", "Dana\x01Levi", true},
		{"too long", string(make([]byte, 130)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFullName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFullName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "dana@example.com", false},
		{"subdomain", "dana@mail.example.co.il", false},
		{"plus tag", "dana+orders@example.com", false},

		{"empty", "", true},
		{"no at", "dana.example.com", true},
		{"no domain dot", "dana@example", true},
		{"spaces", "dana @example.com", true},
		{"double at", "dana@@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"local with dash", "052-1234567", false},
		{"international", "+972521234567", false},
		{"with spaces", "+972 52 123 4567", false},

		{"empty", "", true},
		{"too short", "12345", true},
		{"letters", "052-CALL-NOW", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePhone(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStorageKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"namespaced", "artprint_basket", false},
		{"with dot", "artprint.basket.v2", false},

		{"empty", "", true},
		{"path separator", "artprint/basket", true},
		{"backslash", "artprint\\basket", true},
		{"traversal", "..basket", true},
		{"control char", "basket\x00", true},
		{"too long", string(make([]byte, 140)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStorageKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStorageKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
