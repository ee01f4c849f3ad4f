package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewStyles(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	if styles == nil {
		t.Fatal("NewStyles should return non-nil Styles")
	}
}

func TestStylesKeepText(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	tests := []struct {
		name   string
		render func(string) string
	}{
		{"FilePath", styles.FilePath},
		{"Category", styles.Category},
		{"Keyword", styles.Keyword},
		{"Dim", styles.Dim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.render("records.txt")
			if !strings.Contains(result, "records.txt") {
				t.Errorf("%s() result should contain text, got: %s", tt.name, result)
			}
		})
	}
}

func TestStylesAmount(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	// A buffer is not a terminal, so no escape codes are added.
	for amount, expected := range map[int64]string{-25: "-25", 0: "0", 100: "100"} {
		if got := styles.Amount(amount); got != expected {
			t.Errorf("Amount(%d) = %q, want %q", amount, got, expected)
		}
	}
}

func TestStylesTiming(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(&buf)

	t.Run("FastOperation", func(t *testing.T) {
		if result := styles.Timing("5ms", false); !strings.Contains(result, "5ms") {
			t.Errorf("Timing() result should contain timing, got: %s", result)
		}
	})

	t.Run("SlowOperation", func(t *testing.T) {
		if result := styles.Timing("500ms", true); !strings.Contains(result, "500ms") {
			t.Errorf("Timing() result should contain timing, got: %s", result)
		}
	})
}
