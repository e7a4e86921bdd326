package service

import "sync"

// Gate refuses to start an action while another one with the same key runs.
type Gate struct {
	mu   sync.Mutex
	busy map[string]bool
}

func NewGate() *Gate {
	return &Gate{busy: make(map[string]bool)}
}

// Do runs fn unless key is already in flight, in which case it returns ErrBusy.
func (g *Gate) Do(key string, fn func() error) error {
	g.mu.Lock()
	if g.busy[key] {
		g.mu.Unlock()
		return ErrBusy
	}
	g.busy[key] = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.busy, key)
		g.mu.Unlock()
	}()
	return fn()
}

// Busy reports whether key is in flight.
func (g *Gate) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy[key]
}
