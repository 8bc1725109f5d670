package resumes

import "errors"

// ErrNotFound indicates a history lookup miss. Report rendering and
// follow-up chat treat this as fatal; there is nothing to substitute.
var ErrNotFound = errors.New("history not found")

// ErrRenderFailed indicates PDF report generation failed. No partial
// document is ever returned alongside it.
var ErrRenderFailed = errors.New("report generation failed")
