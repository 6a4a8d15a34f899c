package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomato/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID          int64  `json:"id"`
	TaskID      string `json:"task_id,omitempty"`
	Task        string `json:"task,omitempty"`
	Minutes     int    `json:"minutes"`
	Points      int    `json:"points"`
	LongBreak   bool   `json:"long_break"`
	CompletedAt string `json:"completed_at"`
}

func ToJSON(sessions []store.SessionRecord, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		export.Sessions = append(export.Sessions, jsonSession{
			ID:          s.ID,
			TaskID:      s.TaskID,
			Task:        s.TaskText,
			Minutes:     s.Minutes,
			Points:      s.Points,
			LongBreak:   s.LongBreak,
			CompletedAt: s.CompletedAt.Local().Format(time.RFC3339),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
