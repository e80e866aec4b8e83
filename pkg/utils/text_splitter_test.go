package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("SplitText = %v, want the input unchanged", chunks)
	}
}

func TestSplitTextChunking(t *testing.T) {
	text := strings.Repeat("abcdefghij", 30) // 300 chars

	chunks := SplitText(text, 100, 20)

	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 100 {
			t.Errorf("chunk %d has %d runes, want <= 100", i, len([]rune(c)))
		}
	}

	// Consecutive chunks share the configured overlap.
	first := []rune(chunks[0])
	second := []rune(chunks[1])
	if string(first[len(first)-20:]) != string(second[:20]) {
		t.Error("chunks do not overlap by 20 runes")
	}

	// Reassembly: dropping each chunk's overlap prefix restores the text.
	var b strings.Builder
	b.WriteString(chunks[0])
	for _, c := range chunks[1:] {
		runes := []rune(c)
		if len(runes) > 20 {
			b.WriteString(string(runes[20:]))
		}
	}
	if b.String() != text {
		t.Error("chunks do not reassemble into the original text")
	}
}

func TestSplitTextMultiByte(t *testing.T) {
	text := strings.Repeat("ब", 250)

	chunks := SplitText(text, 100, 20)

	for i, c := range chunks {
		for _, r := range c {
			if r != 'ब' {
				t.Fatalf("chunk %d contains corrupted rune %q", i, r)
			}
		}
	}
}

func TestSplitTextOverlapAtLeastChunkSize(t *testing.T) {
	text := strings.Repeat("x", 250)

	// Degenerate overlap must not loop forever; falls back to disjoint steps.
	chunks := SplitText(text, 100, 100)
	if len(chunks) != 3 {
		t.Errorf("got %d chunks, want 3 disjoint chunks", len(chunks))
	}
}

func TestSplitMarkdownSections(t *testing.T) {
	doc := "# Title\n\nIntro paragraph.\n\n## Section One\n\nBody one.\n\n## Section Two\n\nBody two.\n\n### Subsection\n\nNested body."

	chunks := SplitMarkdown(doc, 800, 150)

	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4: %q", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[1], "## Section One") {
		t.Errorf("heading not attached to its body: %q", chunks[1])
	}
	if !strings.HasPrefix(chunks[3], "### Subsection") {
		t.Errorf("subsection heading not preserved: %q", chunks[3])
	}
}

func TestSplitMarkdownLongSection(t *testing.T) {
	long := "## Big Section\n\n" + strings.Repeat("word ", 300)
	doc := "Intro.\n" + long

	chunks := SplitMarkdown(doc, 200, 50)

	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want the long section split further", len(chunks))
	}
	if chunks[0] != "Intro." {
		t.Errorf("chunks[0] = %q, want the intro on its own", chunks[0])
	}
	if !strings.HasPrefix(chunks[1], "## Big Section") {
		t.Errorf("chunks[1] = %q, want heading kept with body", chunks[1])
	}
}

func TestSplitMarkdownSkipsEmptySections(t *testing.T) {
	doc := "## One\nBody.\n## \n\n## Two\nMore."

	chunks := SplitMarkdown(doc, 800, 150)

	for i, c := range chunks {
		if strings.TrimSpace(c) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}
