// Package datastore holds the JSON file primitives shared by the bot's flat-file
// collections: tolerant reads, atomic verified writes and rotating backups.
package datastore

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// ErrNotExist is returned by ReadJSON when the file is absent.
var ErrNotExist = errors.New("datastore: file does not exist")

// ReadJSON decodes the file at path into v.
// A missing file yields ErrNotExist so callers can substitute an empty collection.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotExist
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("invalid JSON format: empty file")
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}
	return nil
}

// WriteJSON marshals v with two-space indentation and writes it atomically.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := WriteFileAtomic(path, data); err != nil {
		return err
	}
	return verifyFile(path, data)
}

// WriteFileAtomic writes data to a temporary sibling, syncs it and renames it over path.
func WriteFileAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"

	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open temp file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	file.Close()

	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// verifyFile checks that the written file matches expected data
func verifyFile(path string, expected []byte) error {
	actual, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file for verification: %w", err)
	}

	if checksum(actual) != checksum(expected) {
		return fmt.Errorf("file checksum mismatch")
	}
	return nil
}

func checksum(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}

// Backup copies path to a timestamped sibling and prunes all but the newest keep copies.
// A missing source file is not an error.
func Backup(path string, keep int, now time.Time) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	defer src.Close()

	backupFile := fmt.Sprintf("%s.backup.%s", path, now.Format("20060102_150405.000"))

	dst, err := os.Create(backupFile)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	if keep > 0 {
		PruneBackups(path, keep)
	}
	return backupFile, nil
}

// PruneBackups removes old backup files of path beyond the keep limit, oldest first.
func PruneBackups(path string, keep int) {
	matches, err := filepath.Glob(path + ".backup.*")
	if err != nil || len(matches) <= keep {
		return
	}

	// the timestamp suffix sorts lexically in creation order
	sort.Strings(matches)
	for _, old := range matches[:len(matches)-keep] {
		os.Remove(old)
	}
}
