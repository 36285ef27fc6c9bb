package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short", 500, 100)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Errorf("SplitText(short) = %v, want the input unchanged", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 10) + strings.Repeat("b", 10)
	chunks := SplitText(text, 10, 4)

	if len(chunks) < 2 {
		t.Fatalf("chunks = %d, want at least 2", len(chunks))
	}
	// Neighboring chunks share the overlap region.
	first, second := chunks[0], chunks[1]
	if !strings.HasPrefix(second, first[len(first)-4:]) {
		t.Errorf("second chunk %q does not start with the last 4 chars of %q", second, first)
	}

	// Concatenation minus overlaps reproduces the input.
	var rebuilt strings.Builder
	for i, c := range chunks {
		if i == 0 {
			rebuilt.WriteString(c)
			continue
		}
		rebuilt.WriteString(c[4:])
	}
	if rebuilt.String() != text {
		t.Errorf("rebuilt = %q, want %q", rebuilt.String(), text)
	}
}

func TestSplitTextDegenerateOverlap(t *testing.T) {
	text := strings.Repeat("x", 25)
	chunks := SplitText(text, 10, 10) // overlap >= chunkSize falls back to plain steps
	if len(chunks) != 3 {
		t.Errorf("chunks = %d, want 3", len(chunks))
	}
}
