package domain

// SanitizeNaN rewrites bare NaN tokens in a JSON payload to null so the
// payload parses as strict JSON. Occurrences inside string literals are left
// untouched. Upstream exports emit NaN for missing numeric fields; after
// sanitizing, those fields decode to nil like any other absent value.
func SanitizeNaN(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		b := data[i]

		if inString {
			out = append(out, b)
			if escaped {
				escaped = false
			} else if b == '\\' {
				escaped = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		if b == '"' {
			inString = true
			out = append(out, b)
			continue
		}

		if b == 'N' && i+2 < len(data) && data[i+1] == 'a' && data[i+2] == 'N' {
			out = append(out, 'n', 'u', 'l', 'l')
			i += 2
			continue
		}

		out = append(out, b)
	}
	return out
}
