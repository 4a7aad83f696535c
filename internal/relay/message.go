package relay

import (
	"errors"
	"fmt"
	"html"
	"net/mail"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ErrInvalidMessage is returned for messages with missing fields or a bad address.
var ErrInvalidMessage = errors.New("relay: invalid message")

var strict = bluemonday.StrictPolicy()

// Message is one contact form submission.
type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Clean strips markup and surrounding whitespace from every field.
func (m Message) Clean() Message {
	return Message{
		Name:    clean(m.Name),
		Email:   clean(m.Email),
		Subject: clean(m.Subject),
		Body:    clean(m.Body),
	}
}

// Validate reports every empty field and an unparsable email address.
func (m Message) Validate() error {
	var problems []string
	for _, f := range []struct{ name, val string }{
		{"name", m.Name},
		{"email", m.Email},
		{"subject", m.Subject},
		{"message", m.Body},
	} {
		if strings.TrimSpace(f.val) == "" {
			problems = append(problems, f.name+" is required")
		}
	}
	if e := strings.TrimSpace(m.Email); e != "" {
		if addr, err := mail.ParseAddress(e); err != nil || addr.Address != e {
			problems = append(problems, "email is not a valid address")
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidMessage, strings.Join(problems, "; "))
	}
	return nil
}

// clean strips tags. StrictPolicy leaves text entity-escaped, so it is decoded back.
func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
