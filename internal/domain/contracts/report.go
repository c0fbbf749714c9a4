package contracts

import (
	"encoding/json"
	"fmt"
)

// ParseReport decodes an analyzer verdict. The model is asked for pure JSON,
// but providers occasionally wrap the object in prose or code fences; when a
// strict parse fails we extract the first balanced {...} object from the
// text and parse that instead. Only if neither works does the item fail.
func ParseReport(raw string) (*Report, error) {
	var r Report
	if err := json.Unmarshal([]byte(raw), &r); err == nil {
		return &r, nil
	}

	obj, ok := firstJSONObject(raw)
	if !ok {
		return nil, fmt.Errorf("no JSON object in analyzer output")
	}
	if err := json.Unmarshal([]byte(obj), &r); err != nil {
		return nil, fmt.Errorf("malformed analyzer output: %w", err)
	}
	return &r, nil
}

// firstJSONObject returns the first balanced top-level {...} in s. The scan
// is string-aware so braces inside JSON strings don't unbalance it.
func firstJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if start < 0 {
			if c == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
