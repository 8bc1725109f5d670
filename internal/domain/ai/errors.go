package ai

import "errors"

// ErrQuotaExceeded indicates the completion provider returned a
// quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")
