// File: stringx_test.go
// Title: Unit Tests for Core String Utilities
// Description: Table-driven tests for the whitespace and splitting helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19

package stringx

import (
	"testing"
)

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"empty string", "", true},
		{"single space", " ", true},
		{"mixed whitespace", " \t\n\r ", true},
		{"string with content", "hello", false},
		{"string with spaces around", " hello ", false},
		{"unicode content", "こんにちは", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsBlank(tt.input); result != tt.expected {
				t.Errorf("IsBlank(%q) = %v; want %v", tt.input, result, tt.expected)
			}
			if result := IsNotBlank(tt.input); result == tt.expected {
				t.Errorf("IsNotBlank(%q) = %v; want %v", tt.input, result, !tt.expected)
			}
		})
	}
}

func TestContainsWhitespace(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"quote", false},
		{"", false},
		{"quote add", true},
		{"quote\tadd", true},
		{"quote add", true},
		{"trigger-regex", false},
	}

	for _, tt := range tests {
		if result := ContainsWhitespace(tt.input); result != tt.expected {
			t.Errorf("ContainsWhitespace(%q) = %v; want %v", tt.input, result, tt.expected)
		}
	}
}

func TestFirstField(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantRest  string
	}{
		{"empty", "", "", ""},
		{"blank", "   ", "", ""},
		{"single word", "quote", "quote", ""},
		{"word and args", "quote {r: foo}", "quote", "{r: foo}"},
		{"surrounding whitespace", "  help   quote  ", "help", "quote"},
		{"tab separator", "help\tquote", "help", "quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, rest := FirstField(tt.input)
			if first != tt.wantFirst || rest != tt.wantRest {
				t.Errorf("FirstField(%q) = (%q, %q); want (%q, %q)",
					tt.input, first, rest, tt.wantFirst, tt.wantRest)
			}
		})
	}
}

func TestFirstNonBlank(t *testing.T) {
	if got := FirstNonBlank("", "  ", "bot", "other"); got != "bot" {
		t.Errorf("FirstNonBlank() = %q; want %q", got, "bot")
	}
	if got := FirstNonBlank(" "); got != "" {
		t.Errorf("FirstNonBlank() = %q; want empty", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		ellipsis string
		expected string
	}{
		{"hello", 10, "...", "hello"},
		{"hello world", 8, "...", "hello..."},
		{"こんにちは世界", 4, "…", "こんに…"},
		{"hello", 0, "...", ""},
		{"hello", 2, "...", ".."},
	}

	for _, tt := range tests {
		if result := Truncate(tt.input, tt.maxLen, tt.ellipsis); result != tt.expected {
			t.Errorf("Truncate(%q, %d, %q) = %q; want %q",
				tt.input, tt.maxLen, tt.ellipsis, result, tt.expected)
		}
	}
}
