// Package respond picks the bot's unprompted replies: echoes of a user's own past
// messages and short sentences babbled from the learned-word vocabulary.
package respond

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"babble-bot/internal/storage"
)

const (
	MinWords = 2
	MaxWords = 5

	MinDelay = 3000 * time.Millisecond
	MaxDelay = 5000 * time.Millisecond

	DefaultChance = 0.5
)

// History is the part of the store the echo reply reads from.
type History interface {
	PickMessage(userID string, pick func(n int) int) (storage.MessageRecord, bool)
}

// Generator is safe for concurrent use.
type Generator struct {
	chance             float64
	minDelay, maxDelay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Generator)

// WithRand replaces the time-seeded source, mostly for tests.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithDelay sets the window babble replies are delayed by.
func WithDelay(lo, hi time.Duration) Option {
	return func(g *Generator) {
		if lo >= 0 && hi >= lo {
			g.minDelay, g.maxDelay = lo, hi
		}
	}
}

// WithChance sets the probability that a message triggers babble.
func WithChance(p float64) Option {
	return func(g *Generator) {
		if p >= 0 && p <= 1 {
			g.chance = p
		}
	}
}

func New(opts ...Option) *Generator {
	seed := uint64(time.Now().UnixNano())
	g := &Generator{
		chance:   DefaultChance,
		minDelay: MinDelay,
		maxDelay: MaxDelay,
		rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Pick returns a uniform index in [0, n).
func (g *Generator) Pick(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

// Echo returns one of the user's own past messages, chosen uniformly.
// It reports false when there is nothing worth sending.
func (g *Generator) Echo(h History, userID string) (string, bool) {
	rec, ok := h.PickMessage(userID, g.Pick)
	if !ok || strings.TrimSpace(rec.Content) == "" {
		return "", false
	}
	return rec.Content, true
}

// ShouldBabble flips the babble coin.
func (g *Generator) ShouldBabble() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < g.chance
}

// Sentence draws between MinWords and MaxWords distinct words from vocabulary and
// joins them into a sentence ending with a period. It returns "" when fewer than
// MinWords distinct words are available.
func (g *Generator) Sentence(vocabulary []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	target := MinWords + g.rng.IntN(MaxWords-MinWords+1)
	pool := append([]string(nil), vocabulary...)
	chosen := make([]string, 0, target)
	seen := make(map[string]bool, target)

	for len(chosen) < target && len(pool) > 0 {
		i := g.rng.IntN(len(pool))
		word := pool[i]
		pool[i] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]

		if seen[word] {
			continue
		}
		seen[word] = true
		chosen = append(chosen, word)
	}

	if len(chosen) < MinWords {
		return ""
	}
	return strings.Join(chosen, " ") + "."
}

// Delay returns how long to wait before sending a babble reply.
func (g *Generator) Delay() time.Duration {
	if g.maxDelay <= g.minDelay {
		return g.minDelay
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.minDelay + time.Duration(g.rng.Int64N(int64(g.maxDelay-g.minDelay)))
}
