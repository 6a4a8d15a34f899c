package tui

import (
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTasks viewState = iota
	viewStore
	viewSlots
	viewStats
	viewSession // focus/break; not in the tab row
	viewSettings
)

var tabViews = []viewState{viewTasks, viewStore, viewSlots, viewStats, viewSettings}

var viewNames = map[viewState]string{
	viewTasks:    "Tasks",
	viewStore:    "Store",
	viewSlots:    "Slots",
	viewStats:    "Stats",
	viewSettings: "Settings",
}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// sessionEndedMsg returns the UI to the task list after cancel/finish.
type sessionEndedMsg struct{}

type settingsSavedMsg struct{}

type statsDataMsg struct {
	days     []dayPoints
	sessions int
	minutes  int64
	points   int64
}

type dayPoints struct {
	date   string
	points int
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func truncate(s string, n int) string {
	if n <= 1 || len([]rune(s)) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
