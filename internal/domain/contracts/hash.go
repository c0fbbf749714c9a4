package contracts

import (
	"regexp"
	"strconv"
	"unicode/utf16"
)

// Only the leading part of a document feeds the identifier, so trailing
// edits don't split a contract's history. Measured in UTF-16 code units.
const hashPrefixUnits = 5000

var labelSanitizer = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Identify derives the history key for a document: a sanitized label (or
// "text" for pasted content, keeping pasted and file-backed identifiers in
// separate namespaces) joined with a base-36 digest of the text prefix.
// Deterministic and total; the digest of empty input is "0". Two documents
// sharing their first 5000 code units collide and share history.
func Identify(label, text string) ContractID {
	units := utf16.Encode([]rune(text))
	if len(units) > hashPrefixUnits {
		units = units[:hashPrefixUnits]
	}

	// 32-bit rolling hash, signed wraparound.
	var h int32
	for _, u := range units {
		h = h*31 + int32(u)
	}

	prefix := "text"
	if label != "" {
		prefix = labelSanitizer.ReplaceAllString(label, "-")
	}
	return ContractID(prefix + "_" + strconv.FormatInt(int64(h), 36))
}
