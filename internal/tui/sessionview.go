package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomato/internal/engine"
	"github.com/sadopc/pomato/internal/store"
)

// sessionModel renders the running focus or break countdown. The app owns
// the tick loop; this model only reacts to user keys.
type sessionModel struct {
	store   *store.Store
	session *engine.Session
	tasks   *engine.TaskList

	width  int
	height int
}

func newSessionModel(s *store.Store, session *engine.Session, tasks *engine.TaskList) sessionModel {
	return sessionModel{store: s, session: session, tasks: tasks}
}

func (m *sessionModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m sessionModel) update(msg tea.Msg) (sessionModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	timer := m.session.Timer
	switch {
	case key.Matches(keyMsg, keys.Pause):
		if timer.Active {
			m.session.Pause()
		} else if timer.Remaining > 0 {
			m.session.Resume()
		}

	case key.Matches(keyMsg, keys.Cancel), key.Matches(keyMsg, keys.Back):
		if timer.Mode == engine.ModeFocus {
			m.session.CancelFocus()
			return m, tea.Batch(
				func() tea.Msg { return sessionEndedMsg{} },
				status("Session cancelled — no points for abandoned tomatoes", false),
			)
		}
		if timer.Mode.IsBreak() {
			return m.finishBreak()
		}

	case key.Matches(keyMsg, keys.Enter):
		// Once the break runs out, enter returns to the task list.
		if timer.Mode.IsBreak() && timer.Done() {
			return m.finishBreak()
		}

	case key.Matches(keyMsg, keys.Bank):
		if timer.Mode.IsBreak() {
			added := m.session.DrawFromTimeBank()
			if added == 0 {
				return m, status("Time bank is empty", true)
			}
			if err := m.store.SaveInventory(m.session.Inventory); err != nil {
				return m, status(fmt.Sprintf("Save error: %v", err), true)
			}
			return m, status(fmt.Sprintf("🏦 +%d min from the time bank", added), false)
		}
	}
	return m, nil
}

func (m sessionModel) finishBreak() (sessionModel, tea.Cmd) {
	m.session.FinishBreak()
	if err := m.store.SaveInventory(m.session.Inventory); err != nil {
		return m, status(fmt.Sprintf("Save error: %v", err), true)
	}
	return m, func() tea.Msg { return sessionEndedMsg{} }
}

func (m sessionModel) view() string {
	w := m.width - 4
	timer := m.session.Timer

	switch {
	case timer.Mode == engine.ModeFocus:
		return m.viewFocus(w)
	case timer.Mode.IsBreak():
		return m.viewBreak(w)
	}
	return panelStyle.Width(w).Render(mutedStyle.Render("No session running."))
}

func (m sessionModel) viewFocus(w int) string {
	timer := m.session.Timer

	var rows []string
	rows = append(rows, highlightStyle.Render(fmt.Sprintf("Cycle %d", timer.Cycles+1)))
	rows = append(rows, "")

	if t := m.tasks.Get(m.session.ActiveTaskID()); t != nil {
		rows = append(rows, titleStyle.Render(truncate(t.Text, w-6)))
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("Pomodoro %d of %d", t.PomodorosCompleted+1, t.TotalPomodoros)))
	}

	rows = append(rows, "")
	rows = append(rows, timerStyle.Width(w-6).Render(engine.FormatTime(timer.Remaining)))
	if timer.Active {
		rows = append(rows, timerStyle.Width(w-6).Render("FOCUS"))
	} else {
		rows = append(rows, warningStyle.Width(w - 6).Align(lipgloss.Center).Render("PAUSED"))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("space: pause/resume  x: cancel"))

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

func (m sessionModel) viewBreak(w int) string {
	timer := m.session.Timer
	inv := m.session.Inventory

	label := "🌟 Break Time"
	if timer.Mode == engine.ModeLongBreak {
		label = "☕ Long Break Time"
	}

	var rows []string
	rows = append(rows, titleStyle.Render(label))
	if res := m.session.LastFocus(); res != nil {
		earned := fmt.Sprintf("+%d 🍅", res.Points)
		if res.Doubled {
			earned += " (doubled!)"
		}
		if res.Extended {
			earned += "  ⏰ break extended"
		}
		rows = append(rows, successStyle.Render(earned))
	}

	rows = append(rows, "")
	rows = append(rows, breakTimerStyle.Width(w-6).Render(engine.FormatTime(timer.Remaining)))
	switch {
	case timer.Done():
		rows = append(rows, successStyle.Width(w - 6).Align(lipgloss.Center).Render("✨ Break complete! Ready for another session?"))
	case !timer.Active:
		rows = append(rows, warningStyle.Width(w - 6).Align(lipgloss.Center).Render("PAUSED"))
	}

	if inv.TimeBank > 0 {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("🏦 Time bank: %d min available", inv.TimeBank)))
	}

	rows = append(rows, "")
	if timer.Done() {
		rows = append(rows, mutedStyle.Render("enter: back to tasks"))
	} else {
		controls := "space: pause/resume  x: skip break"
		if inv.TimeBank > 0 {
			controls += fmt.Sprintf("  b: +%d min from bank", min(engine.MaxBankDraw, inv.TimeBank))
		}
		rows = append(rows, mutedStyle.Render(controls))
	}

	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}
