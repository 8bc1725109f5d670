package mail

import "context"

// Sender port for outbound mail. One shot, no retry; the caller reports
// success or failure straight back to the user.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
