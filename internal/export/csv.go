package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomato/internal/store"
)

func ToCSV(sessions []store.SessionRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Task", "Minutes", "Points", "Long Break", "Completed At"}); err != nil {
		return err
	}

	for _, s := range sessions {
		task := s.TaskText
		if task == "" {
			task = "(no task)"
		}
		longBreak := "no"
		if s.LongBreak {
			longBreak = "yes"
		}

		row := []string{
			fmt.Sprintf("%d", s.ID),
			task,
			fmt.Sprintf("%d", s.Minutes),
			fmt.Sprintf("%d", s.Points),
			longBreak,
			s.CompletedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
