package scene

import "strings"

const (
	summaryLineLength   = 20
	summaryDisplayLines = 2
	summaryEllipsis     = "…"
)

// FormatSummary produces the bounded preview string shown on a scene card.
//
// The summary is trimmed, split on explicit newlines, and each line is
// wrapped at 20 columns. Wrapping is rune-based so multi-byte scripts count
// one column per character; empty lines are preserved. When the wrapped
// result exceeds two lines, only the first two are kept and an ellipsis is
// appended to the second. Display-only: the stored summary is never mutated.
func FormatSummary(summary string) string {
	trimmed := strings.TrimSpace(summary)
	if trimmed == "" {
		return ""
	}

	var wrapped []string
	for _, line := range strings.Split(trimmed, "\n") {
		if line == "" {
			wrapped = append(wrapped, "")
			continue
		}

		runes := []rune(line)
		for start := 0; start < len(runes); start += summaryLineLength {
			end := start + summaryLineLength
			if end > len(runes) {
				end = len(runes)
			}
			wrapped = append(wrapped, string(runes[start:end]))
		}
	}

	if len(wrapped) <= summaryDisplayLines {
		return strings.Join(wrapped, "\n")
	}

	truncated := wrapped[:summaryDisplayLines]
	truncated[len(truncated)-1] += summaryEllipsis
	return strings.Join(truncated, "\n")
}
