package ats

// ExtractJSONObject returns the first balanced {...} substring of s. Braces
// inside JSON string literals are ignored. ok is false when no balanced
// object exists.
func ExtractJSONObject(s string) (string, bool) {
	for start := 0; start < len(s); start++ {
		if s[start] != '{' {
			continue
		}
		if end, ok := matchObject(s, start); ok {
			return s[start : end+1], true
		}
	}
	return "", false
}

func matchObject(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
