package storage

import (
	"fmt"
	"log"
	"time"

	"babble-bot/datastore"

	"github.com/go-co-op/gocron"
)

// Backup copies the history file to a timestamped sibling, keeping the newest keep copies.
func (s *Store) Backup(keep int) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	name, err := datastore.Backup(s.paths.History, keep, time.Now())
	if err != nil {
		return fmt.Errorf("backup %s: %w", s.paths.History, err)
	}
	if name != "" {
		log.Printf("[DONE] History backed up to %s", name)
	}
	return nil
}

// StartBackups schedules Backup every interval until the returned scheduler is stopped.
func StartBackups(store *Store, every time.Duration, keep int) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)

	_, err := s.Every(every).WaitForSchedule().Do(func() {
		if err := store.Backup(keep); err != nil {
			log.Println("[ERR] Error backing up history:", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule history backup: %w", err)
	}

	s.StartAsync()
	log.Printf("[INFO] History backups every %s, keeping %d", every, keep)
	return s, nil
}
