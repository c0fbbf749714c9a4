package contracts

import "errors"

// ErrQuotaExceeded indicates the analyzer provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("analyzer quota exceeded")
