package tokenizer

import (
	"strings"
	"testing"
)

func TestEstimateCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"short", "Hi!", 0},
		{"twelve chars", "Hello, world", 3},
		{"hundred chars", strings.Repeat("a", 100), 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateCount(tt.text); got != tt.want {
				t.Errorf("EstimateCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountExact(t *testing.T) {
	n, err := CountExact("Hello, world")
	if err != nil {
		t.Skipf("cl100k_base encoding unavailable: %v", err)
	}
	if n <= 0 {
		t.Errorf("CountExact returned %d, want > 0", n)
	}

	// Counting is deterministic for a fixed encoding.
	again, err := CountExact("Hello, world")
	if err != nil {
		t.Fatal(err)
	}
	if again != n {
		t.Errorf("CountExact not deterministic: %d then %d", n, again)
	}

	// More text never yields fewer tokens.
	longer, err := CountExact("Hello, world. Hello again, world.")
	if err != nil {
		t.Fatal(err)
	}
	if longer <= n {
		t.Errorf("longer text counted %d tokens, want more than %d", longer, n)
	}
}

func TestCountNeverNegative(t *testing.T) {
	if got := Count(""); got != 0 {
		t.Errorf("Count(\"\") = %d, want 0", got)
	}
	if got := Count("some text"); got <= 0 {
		t.Errorf("Count = %d, want > 0", got)
	}
}
