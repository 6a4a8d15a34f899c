package tui

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomato/internal/engine"
	"github.com/sadopc/pomato/internal/export"
	"github.com/sadopc/pomato/internal/slots"
	"github.com/sadopc/pomato/internal/store"
)

// hookSink queues collaborator callbacks fired during an engine event so
// the app can turn them into messages after the state transition has
// committed, never during it.
type hookSink struct {
	notices   []string
	bell      bool
	flash     string
	celebrate bool
	ended     bool
}

func (s *hookSink) drain() (notices []string, bell bool, flash string, celebrate, ended bool) {
	notices, bell, flash, celebrate, ended = s.notices, s.bell, s.flash, s.celebrate, s.ended
	*s = hookSink{}
	return
}

// App is the root Bubble Tea model.
type App struct {
	store    *store.Store
	tasks    *engine.TaskList
	settings *engine.Settings
	session  *engine.Session
	sink     *hookSink

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	taskList     taskListModel
	sessionView  sessionModel
	storeView    storeViewModel
	slotsView    slotsViewModel
	stats        statsModel
	settingsView settingsViewModel

	help   help.Model
	status string
}

// NewApp loads persisted state and assembles the engine behind the UI.
func NewApp(s *store.Store) (App, error) {
	tasks, err := s.LoadTasks()
	if err != nil {
		return App{}, fmt.Errorf("load tasks: %w", err)
	}
	settings, err := s.LoadSettings()
	if err != nil {
		return App{}, fmt.Errorf("load settings: %w", err)
	}
	ledger, err := s.LoadLedger()
	if err != nil {
		return App{}, fmt.Errorf("load points: %w", err)
	}
	inv, err := s.LoadInventory()
	if err != nil {
		return App{}, fmt.Errorf("load inventory: %w", err)
	}

	// Daily rollover happens once, on startup.
	ledger.CheckAndResetDaily()
	if err := s.SaveLedger(ledger); err != nil {
		return App{}, fmt.Errorf("save points: %w", err)
	}

	sink := &hookSink{}
	hooks := engine.Hooks{
		Notify: func(title, body string) {
			sink.notices = append(sink.notices, title+" "+body)
		},
		PlaySound: func() { sink.bell = true },
		FlashTitle: func(message string, _ int) {
			sink.flash = message
		},
		Celebrate:         func() { sink.celebrate = true },
		IncrementPomodoro: tasks.IncrementPomodoro,
		OnSessionEnd:      func() { sink.ended = true },
	}
	session := engine.NewSession(engine.NewTimer(), ledger, inv, &settings, hooks)

	machine := slots.New(rand.NewSource(time.Now().UnixNano()))

	h := help.New()
	h.ShowAll = false

	return App{
		store:        s,
		tasks:        tasks,
		settings:     &settings,
		session:      session,
		sink:         sink,
		activeView:   viewTasks,
		taskList:     newTaskListModel(s, tasks, inv),
		sessionView:  newSessionModel(s, session, tasks),
		storeView:    newStoreViewModel(s, ledger, inv),
		slotsView:    newSlotsViewModel(s, ledger, machine),
		stats:        newStatsModel(s, ledger),
		settingsView: newSettingsViewModel(s, &settings),
		help:         h,
	}, nil
}

// Session exposes the engine for tests.
func (a App) Session() *engine.Session {
	return a.session
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		tea.SetWindowTitle("pomato"),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.taskList.setSize(a.width, contentHeight)
		a.sessionView.setSize(a.width, contentHeight)
		a.storeView.setSize(a.width, contentHeight)
		a.slotsView.setSize(a.width, contentHeight)
		a.stats.setSize(a.width, contentHeight)
		a.settingsView.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewStore
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewSlots
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewStats
			return a, a.stats.refresh()
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = a.nextTab()
			if a.activeView == viewStats {
				return a, a.stats.refresh()
			}
			return a, nil
		}

	case tickMsg:
		return a.handleTick()

	case startFocusMsg:
		a.session.StartFocus(msg.taskID)
		a.activeView = viewTasks // the session takes over the tasks tab
		return a, nil

	case sessionEndedMsg:
		a.activeView = viewTasks
		return a, nil

	case settingsSavedMsg:
		return a, nil

	case statusMsg:
		a.status = msg.text
		return a, nil

	case statsDataMsg:
		var cmd tea.Cmd
		a.stats, cmd = a.stats.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// handleTick drives the engine by one second and converts whatever the
// completion produced into UI effects, after the engine has committed.
func (a App) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}

	switch a.session.Tick() {
	case engine.TickFocusDone:
		cmds = append(cmds, a.recordFocus()...)
	case engine.TickBreakDone:
		// Nothing to persist: the break credited nothing.
	}

	notices, bell, flash, celebrate, ended := a.sink.drain()
	if len(notices) > 0 {
		text := strings.Join(notices, " · ")
		if celebrate {
			text = "🎉 " + text
		}
		if bell {
			text += "\a"
		}
		a.status = text
	}
	if flash != "" {
		cmds = append(cmds, tea.SetWindowTitle("pomato — "+flash))
	}
	if ended {
		a.activeView = viewTasks
	}

	return a, tea.Batch(cmds...)
}

// recordFocus persists everything one completed focus session changed.
func (a *App) recordFocus() []tea.Cmd {
	var cmds []tea.Cmd
	res := a.session.LastFocus()
	if res == nil {
		return nil
	}

	if err := a.store.SaveLedger(a.session.Ledger); err != nil {
		cmds = append(cmds, status(fmt.Sprintf("Save error: %v", err), true))
	}
	if err := a.store.SaveInventory(a.session.Inventory); err != nil {
		cmds = append(cmds, status(fmt.Sprintf("Save error: %v", err), true))
	}
	if err := a.store.SaveTasks(a.tasks); err != nil {
		cmds = append(cmds, status(fmt.Sprintf("Save error: %v", err), true))
	}

	rec := store.SessionRecord{
		TaskID:    res.TaskID,
		Minutes:   a.settings.FocusDuration,
		Points:    res.Points,
		LongBreak: res.LongBreak,
	}
	if t := a.tasks.Get(res.TaskID); t != nil {
		rec.TaskText = t.Text
	}
	if _, err := a.store.AddSession(rec); err != nil {
		cmds = append(cmds, status(fmt.Sprintf("History error: %v", err), true))
	}
	return cmds
}

func (a App) nextTab() viewState {
	for i, v := range tabViews {
		if v == a.activeView {
			return tabViews[(i+1)%len(tabViews)]
		}
	}
	return viewTasks
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.taskList.formActive || a.taskList.pickingTemplate
	case viewSettings:
		return a.settingsView.formActive
	}
	return false
}

// sessionRunning reports whether a focus or break countdown owns the
// tasks tab right now.
func (a App) sessionRunning() bool {
	return a.session.Timer.Mode != engine.ModeIdle
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTasks:
		if a.sessionRunning() {
			a.sessionView, cmd = a.sessionView.update(msg)
		} else {
			a.taskList, cmd = a.taskList.update(msg)
		}
	case viewStore:
		if a.settings.StoreMode {
			a.storeView, cmd = a.storeView.update(msg)
		}
	case viewSlots:
		if a.settings.FortuneTigerMode {
			a.slotsView, cmd = a.slotsView.update(msg)
		}
	case viewStats:
		a.stats, cmd = a.stats.update(msg)
	case viewSettings:
		a.settingsView, cmd = a.settingsView.update(msg)
	}
	return a, cmd
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTasks:
		if a.sessionRunning() {
			content = a.sessionView.view()
		} else {
			content = a.taskList.view()
		}
	case viewStore:
		if a.settings.StoreMode {
			content = a.storeView.view()
		} else {
			content = a.renderDisabled("The store is disabled in settings.")
		}
	case viewSlots:
		if a.settings.FortuneTigerMode {
			content = a.slotsView.view()
		} else {
			content = a.renderDisabled("Enable Fortune Tiger mode in settings to play.")
		}
	case viewStats:
		content = a.stats.view()
	case viewSettings:
		content = a.settingsView.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderDisabled(text string) string {
	return panelStyle.Width(a.width - 4).Render(mutedStyle.Render(text))
}

func (a App) renderHeader() string {
	var tabs []string
	for _, v := range tabViews {
		if v == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(viewNames[v]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(viewNames[v]))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("🍅 pomato")
	points := successStyle.Render(fmt.Sprintf(" %d 🍅", a.session.Ledger.Total))

	gap := a.width - lipgloss.Width(title) - lipgloss.Width(points) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, points, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Countdown indicator in footer
	timerInfo := ""
	if a.sessionRunning() {
		t := a.session.Timer
		label := engine.FormatTime(t.Remaining)
		if t.Active {
			timerInfo = successStyle.Render(" ● " + label)
		} else {
			timerInfo = warningStyle.Render(" ⏸ " + label)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		sessions, err := a.store.ListSessions(0)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("pomato-export-%s.csv", dateStr))
			if err := export.ToCSV(sessions, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("pomato-export-%s.json", dateStr))
			if err := export.ToJSON(sessions, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
