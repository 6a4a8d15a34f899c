package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomato/internal/engine"
	"github.com/sadopc/pomato/internal/store"
)

type settingsViewModel struct {
	store    *store.Store
	settings *engine.Settings

	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	focusMin      *string
	shortBreakMin *string
	longBreakMin  *string
	cycles        *string
	sound         *bool
	notifications *bool
	fortuneTiger  *bool
	storeMode     *bool
}

func newSettingsViewModel(s *store.Store, settings *engine.Settings) settingsViewModel {
	f, sb, lb, c := "", "", "", ""
	snd, ntf, ft, sm := false, false, false, false
	return settingsViewModel{
		store:         s,
		settings:      settings,
		focusMin:      &f,
		shortBreakMin: &sb,
		longBreakMin:  &lb,
		cycles:        &c,
		sound:         &snd,
		notifications: &ntf,
		fortuneTiger:  &ft,
		storeMode:     &sm,
	}
}

func (m *settingsViewModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsViewModel) update(msg tea.Msg) (settingsViewModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Enter), key.Matches(keyMsg, keys.Edit):
			return m.showForm()
		}
	}
	return m, nil
}

func (m settingsViewModel) showForm() (settingsViewModel, tea.Cmd) {
	*m.focusMin = strconv.Itoa(m.settings.FocusDuration)
	*m.shortBreakMin = strconv.Itoa(m.settings.ShortBreakDuration)
	*m.longBreakMin = strconv.Itoa(m.settings.LongBreakDuration)
	*m.cycles = strconv.Itoa(m.settings.CyclesForLongBreak)
	*m.sound = m.settings.SoundEnabled
	*m.notifications = m.settings.NotificationsEnabled
	*m.fortuneTiger = m.settings.FortuneTigerMode
	*m.storeMode = m.settings.StoreMode

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Focus duration (min)").Value(m.focusMin),
			huh.NewInput().Title("Short break (min)").Value(m.shortBreakMin),
			huh.NewInput().Title("Long break (min)").Value(m.longBreakMin),
			huh.NewInput().Title("Cycles before long break").Value(m.cycles),
		).Title("Timer"),
		huh.NewGroup(
			huh.NewConfirm().Title("Sound").Value(m.sound),
			huh.NewConfirm().Title("Notifications").Value(m.notifications),
			huh.NewConfirm().Title("Fortune Tiger mode (slots)").Value(m.fortuneTiger),
			huh.NewConfirm().Title("Store").Value(m.storeMode),
		).Title("Features"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m settingsViewModel) updateForm(msg tea.Msg) (settingsViewModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.settings.FocusDuration = parsePositive(*m.focusMin, m.settings.FocusDuration)
		m.settings.ShortBreakDuration = parsePositive(*m.shortBreakMin, m.settings.ShortBreakDuration)
		m.settings.LongBreakDuration = parsePositive(*m.longBreakMin, m.settings.LongBreakDuration)
		m.settings.CyclesForLongBreak = parsePositive(*m.cycles, m.settings.CyclesForLongBreak)
		m.settings.SoundEnabled = *m.sound
		m.settings.NotificationsEnabled = *m.notifications
		m.settings.FortuneTigerMode = *m.fortuneTiger
		m.settings.StoreMode = *m.storeMode
		m.settings.Sanitize()

		m.formActive = false
		m.form = nil

		if err := m.store.SaveSettings(*m.settings); err != nil {
			return m, status(fmt.Sprintf("Save error: %v", err), true)
		}
		return m, tea.Batch(
			func() tea.Msg { return settingsSavedMsg{} },
			status("Settings saved", false),
		)
	}

	return m, cmd
}

// parsePositive coerces malformed or non-positive input back to the
// previous value; the engine never sees it.
func parsePositive(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func (m settingsViewModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(m.form.View())
	}

	onOff := func(b bool) string {
		if b {
			return successStyle.Render("on")
		}
		return mutedStyle.Render("off")
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  Focus duration        %d min", m.settings.FocusDuration))
	rows = append(rows, fmt.Sprintf("  Short break           %d min", m.settings.ShortBreakDuration))
	rows = append(rows, fmt.Sprintf("  Long break            %d min", m.settings.LongBreakDuration))
	rows = append(rows, fmt.Sprintf("  Cycles for long break %d", m.settings.CyclesForLongBreak))
	rows = append(rows, "")
	rows = append(rows, "  Sound                 "+onOff(m.settings.SoundEnabled))
	rows = append(rows, "  Notifications         "+onOff(m.settings.NotificationsEnabled))
	rows = append(rows, "  Fortune Tiger mode    "+onOff(m.settings.FortuneTigerMode))
	rows = append(rows, "  Store                 "+onOff(m.settings.StoreMode))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: edit"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
