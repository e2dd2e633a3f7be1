// /internal/storage/storage.go
package storage

import (
	"log"
	"sort"
	"sync"

	"babble-bot/datastore"
)

// Paths locates the three independently persisted collections.
type Paths struct {
	LearnedWords string
	ForeignWords string
	History      string
}

type LearnedWord struct {
	Word string `json:"word"`
}

type MessageRecord struct {
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// History maps a user ID to that user's messages in arrival order.
type History map[string][]MessageRecord

// Store keeps the learned words, the foreign vocabulary and the per-user
// message history in memory. Only the history is mutated at runtime.
type Store struct {
	paths     Paths
	retention int

	mu      sync.RWMutex
	learned []string
	foreign []string
	history History

	saveMu sync.Mutex
}

type Option func(*Store)

// WithRetention caps each user's history to the newest n records. Zero keeps everything.
func WithRetention(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.retention = n
		}
	}
}

// Open builds a store and loads all three collections from disk.
// Load problems are logged and replaced with empty collections; Open never fails.
func Open(paths Paths, opts ...Option) *Store {
	s := &Store{paths: paths, history: History{}}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	learned, err := LoadLearnedWords(s.paths.LearnedWords)
	if err != nil {
		logLoadError(s.paths.LearnedWords, err)
	}

	foreign, err := LoadForeignWords(s.paths.ForeignWords)
	if err != nil {
		logLoadError(s.paths.ForeignWords, err)
	}

	history, err := LoadHistory(s.paths.History)
	if err != nil {
		logLoadError(s.paths.History, err)
	}

	if s.retention > 0 {
		for userID, records := range history {
			if len(records) > s.retention {
				history[userID] = records[len(records)-s.retention:]
			}
		}
	}

	words := make([]string, 0, len(learned))
	for _, lw := range learned {
		words = append(words, lw.Word)
	}

	s.mu.Lock()
	s.learned = words
	s.foreign = foreign
	s.history = history
	s.mu.Unlock()

	log.Printf("[INFO] Loaded %d learned words, %d foreign words, history for %d users",
		len(words), len(foreign), len(history))
}

func logLoadError(path string, err error) {
	if IsMissing(err) {
		log.Printf("[INFO] %s not found, starting empty", path)
		return
	}
	log.Printf("[WARN] Error parsing %s, starting empty: %v", path, err)
}

func (s *Store) Paths() Paths {
	return s.paths
}

// Save writes the whole history map to disk, replacing the previous file.
func (s *Store) Save() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	snapshot := make(History, len(s.history))
	for userID, records := range s.history {
		snapshot[userID] = append([]MessageRecord(nil), records...)
	}
	s.mu.RUnlock()

	return datastore.WriteJSON(s.paths.History, snapshot)
}

// Users returns the IDs with recorded history, sorted.
func (s *Store) Users() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.history))
	for userID := range s.history {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users
}
