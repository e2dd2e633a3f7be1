package storage

import (
	"errors"
	"strings"

	"babble-bot/datastore"
)

// LoadLearnedWords reads an array of {"word": ...} objects.
// Entries with an empty word are skipped; a document of any other shape is an error.
func LoadLearnedWords(path string) ([]LearnedWord, error) {
	var raw []LearnedWord
	if err := datastore.ReadJSON(path, &raw); err != nil {
		return []LearnedWord{}, err
	}

	words := make([]LearnedWord, 0, len(raw))
	for _, w := range raw {
		if strings.TrimSpace(w.Word) == "" {
			continue
		}
		words = append(words, w)
	}
	return words, nil
}

// LoadForeignWords reads an array of strings.
func LoadForeignWords(path string) ([]string, error) {
	var words []string
	if err := datastore.ReadJSON(path, &words); err != nil {
		return []string{}, err
	}
	if words == nil {
		words = []string{}
	}
	return words, nil
}

func SaveLearnedWords(path string, words []LearnedWord) error {
	if words == nil {
		words = []LearnedWord{}
	}
	return datastore.WriteJSON(path, words)
}

func SaveForeignWords(path string, words []string) error {
	if words == nil {
		words = []string{}
	}
	return datastore.WriteJSON(path, words)
}

// LearnedWords returns a copy of the learned-word vocabulary.
func (s *Store) LearnedWords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.learned...)
}

// ForeignWords returns a copy of the foreign vocabulary.
func (s *Store) ForeignWords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.foreign...)
}

// IsMissing reports whether a load error means the file did not exist.
func IsMissing(err error) bool {
	return errors.Is(err, datastore.ErrNotExist)
}
