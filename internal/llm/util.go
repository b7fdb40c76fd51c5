package llm

import "strings"

const fence = "```"

// CleanJSONBlock strips a markdown code fence around a JSON payload.
// Models occasionally fence the payload despite the JSON response type.
// Text without a leading fence is only trimmed.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	body, ok := strings.CutPrefix(text, fence)
	if !ok {
		return text
	}

	// An info string ("json", "javascript") occupies the rest of the opening line.
	if line, rest, found := strings.Cut(body, "\n"); found && isInfoString(line) {
		body = rest
	}
	if idx := strings.LastIndex(body, fence); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

func isInfoString(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) < 20 && !strings.ContainsAny(line, " {[")
}
