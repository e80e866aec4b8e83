package utils

import "strings"

// SplitText splits a long string into chunks of approximately chunkSize
// characters with an overlap to preserve context at boundaries. Simple
// character-based splitter; counts runes so multi-byte text is not cut
// mid-character.
func SplitText(text string, chunkSize int, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	runes := []rune(text)
	totalLen := len(runes)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks
}

// SplitMarkdown splits a markdown document by section boundaries first,
// then falls back to SplitText for sections still larger than chunkSize.
// Keeps headings attached to their body so retrieved chunks stay
// self-describing.
func SplitMarkdown(text string, chunkSize int, overlap int) []string {
	sections := splitBySeparators(text, []string{"\n## ", "\n### ", "\n#### "})

	var chunks []string
	for _, section := range sections {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if len(section) <= chunkSize {
			chunks = append(chunks, section)
			continue
		}
		chunks = append(chunks, SplitText(section, chunkSize, overlap)...)
	}
	return chunks
}

// splitBySeparators cuts text at each separator occurrence, re-attaching
// the separator (minus its leading newline) to the following piece.
func splitBySeparators(text string, separators []string) []string {
	parts := []string{text}
	for _, sep := range separators {
		var next []string
		for _, part := range parts {
			pieces := strings.Split(part, sep)
			next = append(next, pieces[0])
			for _, piece := range pieces[1:] {
				next = append(next, strings.TrimPrefix(sep, "\n")+piece)
			}
		}
		parts = next
	}
	return parts
}
