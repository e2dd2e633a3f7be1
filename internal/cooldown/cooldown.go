// Package cooldown enforces a minimum interval between accepted messages per user.
package cooldown

import (
	"sync"
	"time"
)

const DefaultWindow = time.Second

type Tracker struct {
	window time.Duration

	mu   sync.Mutex
	last map[string]time.Time
}

func New(window time.Duration) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{
		window: window,
		last:   make(map[string]time.Time),
	}
}

// Admit reports whether a message from userID at now may be processed.
// An admitted message becomes the user's new reference point; rejected ones do not.
func (t *Tracker) Admit(userID string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if last, ok := t.last[userID]; ok && now.Sub(last) < t.window {
		return false
	}
	t.last[userID] = now
	return true
}

// Len returns the number of users ever admitted.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.last)
}
