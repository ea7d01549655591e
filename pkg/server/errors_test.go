package server

import (
	"errors"
	"strings"
	"testing"
)

func TestSessionError(t *testing.T) {
	err := NewSessionError("abc", "parse page", ErrNoPage)
	if !errors.Is(err, ErrNoPage) {
		t.Error("SessionError should unwrap to its cause")
	}
	if got := err.Error(); got != "server: session abc: parse page: server: no page" {
		t.Errorf("Error() = %q", got)
	}

	anon := NewSessionError("", "upgrade", ErrInvalidHandshake)
	if got := anon.Error(); got != "server: upgrade: server: invalid handshake" {
		t.Errorf("Error() = %q", got)
	}
}

func TestHandlerError(t *testing.T) {
	err := NewHandlerError("abc", "h12", "Click", "boom", []byte("stack"))
	msg := err.Error()
	for _, want := range []string{"abc", "h12", "Click", "boom"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	var herr *HandlerError
	if !errors.As(error(err), &herr) || string(herr.Stack) != "stack" {
		t.Error("errors.As should find the HandlerError")
	}
}
