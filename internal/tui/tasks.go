package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomato/internal/engine"
	"github.com/sadopc/pomato/internal/store"
)

// startFocusMsg asks the app to begin a focus session for a task.
type startFocusMsg struct {
	taskID string
}

type taskListModel struct {
	store *store.Store
	tasks *engine.TaskList
	inv   *engine.Inventory

	width  int
	height int
	cursor int

	formActive bool
	form       *huh.Form
	editingID  string // empty = creating

	// Form field pointers (survive value copies)
	formText  *string
	formPomos *string

	pickingTemplate bool
	templateCursor  int
}

func newTaskListModel(s *store.Store, tasks *engine.TaskList, inv *engine.Inventory) taskListModel {
	text, pomos := "", ""
	return taskListModel{
		store:     s,
		tasks:     tasks,
		inv:       inv,
		formText:  &text,
		formPomos: &pomos,
	}
}

func (m *taskListModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m taskListModel) update(msg tea.Msg) (taskListModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.pickingTemplate {
		return m.updateTemplatePicker(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.tasks.Tasks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		return m.showForm("")
	case key.Matches(keyMsg, keys.Edit):
		if t := m.selected(); t != nil {
			return m.showForm(t.ID)
		}
	case key.Matches(keyMsg, keys.Delete):
		if t := m.selected(); t != nil {
			m.tasks.Delete(t.ID)
			if m.cursor >= len(m.tasks.Tasks) {
				m.cursor = max(0, len(m.tasks.Tasks)-1)
			}
			return m, m.save()
		}
	case key.Matches(keyMsg, keys.Complete):
		if t := m.selected(); t != nil {
			m.tasks.ToggleComplete(t.ID)
			return m, m.save()
		}
	case key.Matches(keyMsg, keys.Template):
		if m.inv.Owns(engine.ItemTaskTemplates) {
			m.pickingTemplate = true
			m.templateCursor = 0
		} else {
			return m, status("Buy Task Templates in the store first", true)
		}
	case key.Matches(keyMsg, keys.Start), key.Matches(keyMsg, keys.Enter):
		if t := m.selected(); t != nil && !t.IsCompleted {
			id := t.ID
			return m, func() tea.Msg { return startFocusMsg{taskID: id} }
		}
	}
	return m, nil
}

func (m taskListModel) selected() *engine.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks.Tasks) {
		return nil
	}
	return &m.tasks.Tasks[m.cursor]
}

func (m taskListModel) save() tea.Cmd {
	err := m.store.SaveTasks(m.tasks)
	if err != nil {
		return status(fmt.Sprintf("Save error: %v", err), true)
	}
	return nil
}

func (m taskListModel) showForm(editID string) (taskListModel, tea.Cmd) {
	*m.formText = ""
	*m.formPomos = "1"
	if editID != "" {
		if t := m.tasks.Get(editID); t != nil {
			*m.formText = t.Text
			*m.formPomos = strconv.Itoa(t.TotalPomodoros)
		}
	}
	m.editingID = editID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formText).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("task text is required")
					}
					return nil
				}),
			huh.NewInput().Title("Pomodoros").Value(m.formPomos).
				Validate(func(v string) error {
					n, err := strconv.Atoi(strings.TrimSpace(v))
					if err != nil || n < 1 {
						return fmt.Errorf("enter a positive number")
					}
					return nil
				}),
		).Title("Task"),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m taskListModel) updateForm(msg tea.Msg) (taskListModel, tea.Cmd) {
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
		text := strings.TrimSpace(*m.formText)
		// Validated by the form; re-parse defensively anyway.
		pomos, err := strconv.Atoi(strings.TrimSpace(*m.formPomos))
		if err != nil || pomos < 1 {
			pomos = 1
		}
		if m.editingID != "" {
			m.tasks.Update(m.editingID, text, pomos)
		} else {
			m.tasks.Add(text, pomos)
			m.cursor = len(m.tasks.Tasks) - 1
		}
		m.formActive = false
		m.form = nil
		return m, m.save()
	}

	return m, cmd
}

func (m taskListModel) updateTemplatePicker(msg tea.KeyMsg) (taskListModel, tea.Cmd) {
	templates := engine.TaskTemplates()
	switch {
	case key.Matches(msg, keys.Up):
		if m.templateCursor > 0 {
			m.templateCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.templateCursor < len(templates)-1 {
			m.templateCursor++
		}
	case key.Matches(msg, keys.Enter):
		tpl := templates[m.templateCursor]
		m.tasks.AddFromTemplate(tpl)
		m.pickingTemplate = false
		return m, tea.Batch(
			m.save(),
			status(fmt.Sprintf("Added %d tasks from %q", len(tpl.Tasks), tpl.Name), false),
		)
	case key.Matches(msg, keys.Back):
		m.pickingTemplate = false
	}
	return m, nil
}

func (m taskListModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		return activePanelStyle.Width(w).Render(m.form.View())
	}
	if m.pickingTemplate {
		return m.viewTemplatePicker(w)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Tasks"))
	rows = append(rows, "")

	if len(m.tasks.Tasks) == 0 {
		rows = append(rows, mutedStyle.Render("No tasks yet. Press n to add one."))
	}

	for i, t := range m.tasks.Tasks {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		if t.IsCompleted {
			style = doneItemStyle
		}
		check := "[ ]"
		if t.IsCompleted {
			check = "[✓]"
		}
		progress := mutedStyle.Render(fmt.Sprintf(" 🍅 %d/%d", t.PomodorosCompleted, t.TotalPomodoros))
		rows = append(rows, style.Render(cursor+check+" "+truncate(t.Text, w-16))+progress)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: start  n: new  e: edit  d: delete  c: done  t: templates"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m taskListModel) viewTemplatePicker(w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Task Templates"))
	rows = append(rows, "")
	for i, tpl := range engine.TaskTemplates() {
		cursor := "  "
		style := normalItemStyle
		if i == m.templateCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s (%d tasks × %d 🍅)", cursor, tpl.Name, len(tpl.Tasks), tpl.TotalPomodoros)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: add tasks  esc: cancel"))
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// status wraps a message into a statusMsg command.
func status(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}
