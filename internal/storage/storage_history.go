package storage

import (
	"sort"
	"strings"

	"babble-bot/datastore"
)

const noWord = "N/A"

// LoadHistory reads the user → messages object.
func LoadHistory(path string) (History, error) {
	var history History
	if err := datastore.ReadJSON(path, &history); err != nil {
		return History{}, err
	}
	if history == nil {
		history = History{}
	}
	return history, nil
}

// Append records a message at the end of the user's history.
func (s *Store) Append(userID string, record MessageRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(s.history[userID], record)
	if s.retention > 0 && len(records) > s.retention {
		records = append([]MessageRecord(nil), records[len(records)-s.retention:]...)
	}
	s.history[userID] = records
}

// History returns a copy of the user's messages, oldest first.
func (s *Store) History(userID string) []MessageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]MessageRecord(nil), s.history[userID]...)
}

// PickMessage returns the record at index pick(n) of the user's history, where n is
// its length. It reports false when the user has no history.
func (s *Store) PickMessage(userID string, pick func(n int) int) (MessageRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.history[userID]
	if len(records) == 0 {
		return MessageRecord{}, false
	}
	return records[pick(len(records))], true
}

type kv struct {
	Key   string
	Value int
}

// WordUsage returns the most and least used words across the user's history.
// Words are lowercased and split on whitespace. Ties keep first-seen order.
func (s *Store) WordUsage(userID string) (most, least string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return WordUsage(s.history[userID])
}

// WordUsage is Store.WordUsage over a plain record slice.
func WordUsage(records []MessageRecord) (most, least string) {
	counts := wordCounts(records)
	if len(counts) == 0 {
		return noWord, noWord
	}
	return counts[0].Key, counts[len(counts)-1].Key
}

// wordCounts builds the frequency table sorted by descending count.
func wordCounts(records []MessageRecord) []kv {
	index := make(map[string]int)
	var counts []kv

	for _, rec := range records {
		for _, word := range strings.Fields(rec.Content) {
			word = strings.ToLower(word)
			if i, ok := index[word]; ok {
				counts[i].Value++
				continue
			}
			index[word] = len(counts)
			counts = append(counts, kv{Key: word, Value: 1})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Value > counts[j].Value
	})
	return counts
}
