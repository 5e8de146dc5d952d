package infrastructure

import "strings"

var commentMarkers = []string{"#", "//", "<!--"}

// CleanGeneratedCode strips the echoed prompt and any surrounding markdown
// fence, then drops blank lines and lines that start with a comment marker.
func CleanGeneratedCode(raw, prompt string) string {
	out := raw
	if prompt != "" && strings.HasPrefix(out, prompt) {
		out = out[len(prompt):]
	}

	out = strings.TrimSpace(out)
	if strings.HasPrefix(out, "```") {
		// the opening fence may carry a language tag, e.g. ```html
		if idx := strings.Index(out, "\n"); idx >= 0 {
			out = out[idx+1:]
		} else {
			out = ""
		}
	}
	out = strings.TrimSpace(out)
	out = strings.TrimSpace(strings.TrimSuffix(out, "```"))

	lines := strings.Split(out, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isCommentLine(trimmed) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t\r"))
	}
	return strings.Join(kept, "\n")
}

func isCommentLine(trimmed string) bool {
	for _, marker := range commentMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}
