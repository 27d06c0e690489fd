// Package notify is the single-channel notification surface (the toast).
//
// At most one message is visible at a time; a new message replaces the
// previous one immediately, and every message auto-dismisses after a
// fixed TTL (about three seconds by default, configurable).
package notify

import (
	"sync"
	"time"
)

// Kind flags a message as success or failure styling.
type Kind int

const (
	Success Kind = iota
	Failure
)

// Message is one visible notification.
type Message struct {
	Text string
	Kind Kind
}

// Toaster owns the notification channel. Safe for concurrent use.
type Toaster struct {
	mu      sync.Mutex
	ttl     time.Duration
	gen     uint64 // bumped on every push; stale dismiss timers no-op
	current *Message
	timer   *time.Timer

	// OnShow, if set, is called (outside the lock) whenever a new
	// message becomes visible. The CLI uses it to print the toast.
	OnShow func(Message)
}

// New returns a Toaster whose messages auto-dismiss after ttl.
func New(ttl time.Duration) *Toaster {
	return &Toaster{ttl: ttl}
}

// Success shows a success-styled message, replacing any visible one.
func (t *Toaster) Success(text string) { t.push(Message{Text: text, Kind: Success}) }

// Failure shows a failure-styled message, replacing any visible one.
func (t *Toaster) Failure(text string) { t.push(Message{Text: text, Kind: Failure}) }

func (t *Toaster) push(m Message) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.current = &m
	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.ttl, func() { t.dismiss(gen) })
	show := t.OnShow
	t.mu.Unlock()

	if show != nil {
		show(m)
	}
}

// dismiss clears the message only if it is still the one the timer was
// armed for; a newer message keeps its own full TTL.
func (t *Toaster) dismiss(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gen == gen {
		t.current = nil
	}
}

// Current returns the visible message, if any.
func (t *Toaster) Current() (Message, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return Message{}, false
	}
	return *t.current, true
}
