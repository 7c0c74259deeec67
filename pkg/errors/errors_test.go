package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestCodeOf(t *testing.T) {
	if got := CodeOf(Usagef("bad flag")); got != ErrUsage {
		t.Errorf("expected USAGE, got %q", got)
	}
	if got := CodeOf(Wrap(io.EOF, ErrResource, "open failed")); got != ErrResource {
		t.Errorf("expected RESOURCE, got %q", got)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty code for plain error, got %q", got)
	}
}

func TestCodeSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", Usagef("speed factor must be > 0"))
	if !IsUsage(err) {
		t.Error("usage code lost through fmt.Errorf wrapping")
	}
}

func TestUnwrap(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, ErrEngine, "stream aborted")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("wrapped error not reachable via errors.Is")
	}
	want := "stream aborted: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
