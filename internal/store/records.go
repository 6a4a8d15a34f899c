package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/pomato/internal/engine"
)

// Persisted state lives in the records table as one JSON document per
// namespace, mirroring the key/value contract of the original app.
const (
	nsTasks     = "tasks"
	nsSettings  = "settings"
	nsPoints    = "tomato-points"
	nsInventory = "inventory"
)

func (s *Store) putRecord(ns string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", ns, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO records (ns, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(ns) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		ns, string(data), now,
	)
	if err != nil {
		return fmt.Errorf("put %s record: %w", ns, err)
	}
	return nil
}

// getRecord unmarshals the namespace's document into v. Reports false
// without touching v when the record does not exist yet.
func (s *Store) getRecord(ns string, v any) (bool, error) {
	var data string
	err := s.db.QueryRow(`SELECT value FROM records WHERE ns = ?`, ns).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s record: %w", ns, err)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return false, fmt.Errorf("unmarshal %s record: %w", ns, err)
	}
	return true, nil
}

func (s *Store) SaveTasks(tl *engine.TaskList) error {
	return s.putRecord(nsTasks, tl.Tasks)
}

func (s *Store) LoadTasks() (*engine.TaskList, error) {
	tl := engine.NewTaskList()
	if _, err := s.getRecord(nsTasks, &tl.Tasks); err != nil {
		return nil, err
	}
	return tl, nil
}

func (s *Store) SaveSettings(settings engine.Settings) error {
	return s.putRecord(nsSettings, settings)
}

// LoadSettings returns the saved settings, sanitized, or the defaults when
// nothing has been saved yet.
func (s *Store) LoadSettings() (engine.Settings, error) {
	settings := engine.DefaultSettings()
	if _, err := s.getRecord(nsSettings, &settings); err != nil {
		return settings, err
	}
	settings.Sanitize()
	return settings, nil
}

func (s *Store) SaveLedger(l *engine.Ledger) error {
	return s.putRecord(nsPoints, l)
}

func (s *Store) LoadLedger() (*engine.Ledger, error) {
	l := engine.NewLedger()
	if _, err := s.getRecord(nsPoints, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Store) SaveInventory(inv *engine.Inventory) error {
	return s.putRecord(nsInventory, inv)
}

func (s *Store) LoadInventory() (*engine.Inventory, error) {
	inv := engine.NewInventory()
	if _, err := s.getRecord(nsInventory, inv); err != nil {
		return nil, err
	}
	if inv.ConsumableItems == nil {
		inv.ConsumableItems = make(map[engine.ItemID]int)
	}
	return inv, nil
}
