package gateway

import "encoding/json"

// ExtractJSON returns the first balanced {...} region of text that parses as
// a JSON object. The scanner is string- and escape-aware, so braces inside
// string values do not end a region. Returns "" and false when no region
// parses; partially valid data is never returned.
func ExtractJSON(text string) (string, bool) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}
		end, ok := balancedSpan(text, start)
		if !ok {
			// No balanced region opens here or later.
			return "", false
		}
		candidate := text[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
		start = end
	}
	return "", false
}

// balancedSpan returns the index of the brace closing the region opened at
// start.
func balancedSpan(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
