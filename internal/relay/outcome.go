package relay

import (
	"errors"
	"time"
)

const (
	// RevertAfter is how long the submit button shows the result before resetting.
	RevertAfter = 3 * time.Second
	// DismissAfter is how long the toast stays up.
	DismissAfter = 5 * time.Second
)

// Notice is the toast shown after a submission.
type Notice struct {
	Kind         string // "success" or "error"
	Key          string
	DismissAfter time.Duration
}

// Button is the temporary state of the submit button.
type Button struct {
	Key         string
	RevertAfter time.Duration
}

// Outcome is what the contact form shows after Send returned.
type Outcome struct {
	OK     bool
	Notice Notice
	Button Button
	// Values refill the form. They are empty after a successful send.
	Values Message
}

// OutcomeFor maps the result of Send to the form state. Failed sends keep the
// submitted values for another attempt.
func OutcomeFor(msg Message, err error) Outcome {
	switch {
	case err == nil:
		return Outcome{
			OK:     true,
			Notice: Notice{Kind: "success", Key: "contact.toast.success", DismissAfter: DismissAfter},
			Button: Button{Key: "contact.sent", RevertAfter: RevertAfter},
		}
	case errors.Is(err, ErrInvalidMessage):
		return Outcome{
			Notice: Notice{Kind: "error", Key: "contact.toast.invalid", DismissAfter: DismissAfter},
			Button: Button{Key: "contact.send"},
			Values: msg,
		}
	default:
		return Outcome{
			Notice: Notice{Kind: "error", Key: "contact.toast.error", DismissAfter: DismissAfter},
			Button: Button{Key: "contact.failed", RevertAfter: RevertAfter},
			Values: msg,
		}
	}
}
