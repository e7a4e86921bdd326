package service

import (
	"errors"
	"testing"
)

func TestGate(t *testing.T) {
	g := NewGate()
	inner := errors.New("inner")

	err := g.Do("a", func() error {
		if !g.Busy("a") {
			t.Fatalf("key should be busy while running")
		}
		if err := g.Do("a", func() error { return nil }); !errors.Is(err, ErrBusy) {
			t.Fatalf("expected busy, got %v", err)
		}
		if err := g.Do("b", func() error { return nil }); err != nil {
			t.Fatalf("other keys must run: %v", err)
		}
		return inner
	})
	if !errors.Is(err, inner) {
		t.Fatalf("expected inner error, got %v", err)
	}
	if g.Busy("a") {
		t.Fatalf("key must be released")
	}
}
