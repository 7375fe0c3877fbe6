// Package tui is the interactive front end. The bubbletea program loop is
// the interactive thread: posted continuations and surface redraws arrive
// there as messages.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"trackview/internal/repaint"
)

type (
	postMsg   struct{ fn func() }
	redrawMsg struct{}
	busyMsg   struct{ on bool }
	failMsg   struct{ err error }
)

// Bridge forwards coordinator callbacks into a program. Messages are queued
// and delivered in order by a pump goroutine, so callers, including Update
// itself, never block on the program.
type Bridge struct {
	mu     sync.Mutex
	queue  []tea.Msg
	wake   chan struct{}
	stop   chan struct{}
	closed bool
}

func NewBridge() *Bridge {
	return &Bridge{wake: make(chan struct{}, 1), stop: make(chan struct{})}
}

// Start delivers queued messages through send until Stop.
func (b *Bridge) Start(send func(tea.Msg)) {
	go func() {
		for {
			select {
			case <-b.stop:
				return
			case <-b.wake:
			}
			b.mu.Lock()
			batch := b.queue
			b.queue = nil
			b.mu.Unlock()
			for _, m := range batch {
				send(m)
			}
		}
	}()
}

// Stop ends delivery. Undelivered and later redraws and busy changes are
// dropped; posted continuations run inline so the coordinator still returns
// to idle.
func (b *Bridge) Stop() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.stop)
	left := b.queue
	b.queue = nil
	b.mu.Unlock()

	for _, m := range left {
		if p, ok := m.(postMsg); ok {
			p.fn()
		}
	}
}

func (b *Bridge) push(m tea.Msg) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		if p, ok := m.(postMsg); ok {
			p.fn()
		}
		return
	}
	b.queue = append(b.queue, m)
	b.mu.Unlock()
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Post runs fn inside the program's Update.
func (b *Bridge) Post(fn func()) { b.push(postMsg{fn: fn}) }

// Redraw re-renders the track view on the next Update.
func (b *Bridge) Redraw() { b.push(redrawMsg{}) }

// ShowBusy turns the status line busy marker on until done is called.
func (b *Bridge) ShowBusy() (done func()) {
	b.push(busyMsg{on: true})
	return func() { b.push(busyMsg{on: false}) }
}

// Fail reports a load failure in the status line.
func (b *Bridge) Fail(err error) { b.push(failMsg{err: err}) }

var (
	_ repaint.Poster        = (*Bridge)(nil)
	_ repaint.Surface       = (*Bridge)(nil)
	_ repaint.BusyIndicator = (*Bridge)(nil)
)
