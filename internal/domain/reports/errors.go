package reports

import "errors"

// ErrSendFailed is the only failure delivery surfaces to callers; endpoint
// details stay in logs.
var ErrSendFailed = errors.New("failed to send report")
