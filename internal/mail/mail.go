// Package mail hands a reply off to the operator's mail client through a
// mailto: URI.
package mail

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hrdash/hrdash/internal/records"
)

// DefaultSubject is used when the configuration names no subject.
const DefaultSubject = "رد على طلبك"

// ErrNoAddress is returned for records without an email address. Nothing is
// launched in that case.
var ErrNoAddress = errors.New("record has no email address")

// DefaultBody is the greeting prefilled in the reply.
func DefaultBody(name string) string {
	return "مرحباً " + name + ",\n\nشكراً لتواصلك. سنقوم بالرد قريباً.\n\nتحياتنا"
}

// Compose builds the mailto: URI replying to r. An empty subject falls back
// to DefaultSubject and an empty body to DefaultBody.
func Compose(r records.Record, subject, body string) (string, error) {
	addr := strings.TrimSpace(records.Value(r.Email))
	if addr == "" {
		return "", ErrNoAddress
	}
	if subject == "" {
		subject = DefaultSubject
	}
	if body == "" {
		body = DefaultBody(records.Value(r.Name))
	}
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", addr, escape(subject), escape(body)), nil
}

// escape percent-encodes a component. Spaces become %20, which every mail
// client reads as a space inside mailto: headers.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Opener hands a URI to an external application.
type Opener interface {
	Open(uri string) error
}

// Launcher opens URIs with the platform's URL handler.
type Launcher struct {
	Command string
}

// NewLauncher returns a launcher for the current platform.
func NewLauncher() *Launcher {
	if runtime.GOOS == "darwin" {
		return &Launcher{Command: "open"}
	}
	return &Launcher{Command: "xdg-open"}
}

// Open starts the handler and returns without waiting for it.
func (l *Launcher) Open(uri string) error {
	cmd := exec.Command(l.Command, uri)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", l.Command, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// Reply composes the reply to r and passes it to o.
func Reply(o Opener, r records.Record, subject, body string) (string, error) {
	uri, err := Compose(r, subject, body)
	if err != nil {
		return "", err
	}
	if err := o.Open(uri); err != nil {
		return uri, err
	}
	return uri, nil
}
