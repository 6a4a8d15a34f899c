package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomato/internal/engine"
	"github.com/sadopc/pomato/internal/store"
)

type statsModel struct {
	store  *store.Store
	ledger *engine.Ledger

	width  int
	height int

	days     []dayPoints
	sessions int
	minutes  int64
	points   int64
	offset   int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newStatsModel(s *store.Store, ledger *engine.Ledger) statsModel {
	return statsModel{
		store:  s,
		ledger: ledger,
		chart:  barchart.New(60, 12),
	}
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := m.dateRange()
		byDay, _ := m.store.PointsByDay(from, to)
		sessions, minutes, points, _ := m.store.Totals()

		days := make([]dayPoints, 0, len(byDay))
		for _, d := range byDay {
			days = append(days, dayPoints{date: d.Date, points: d.Points})
		}
		return statsDataMsg{days: days, sessions: sessions, minutes: minutes, points: points}
	}
}

// dateRange returns the 7-day window [from, to) selected by offset.
func (m statsModel) dateRange() (time.Time, time.Time) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, 1-7*m.offset)
	return end.AddDate(0, 0, -7), end
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsDataMsg:
		m.days = msg.days
		m.sessions = msg.sessions
		m.minutes = msg.minutes
		m.points = msg.points
		m.buildChart()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			m.offset++
			return m, m.refresh()
		case key.Matches(msg, keys.Right):
			if m.offset > 0 {
				m.offset--
			}
			return m, m.refresh()
		}
	}
	return m, nil
}

func (m *statsModel) buildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12

	m.chart = barchart.New(chartWidth, chartHeight)

	from, to := m.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		label := d.Format("Mon 02")

		value := barchart.BarValue{
			Name:  "points",
			Value: 0,
			Style: lipgloss.NewStyle().Foreground(colorSubtle),
		}
		for _, day := range m.days {
			if day.date == dateStr {
				value.Value = float64(day.points)
				value.Style = lipgloss.NewStyle().Foreground(colorPrimary)
			}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{value},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	w := m.width - 4

	from, to := m.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Stats"), "  ", dateLabel,
	)

	totals := fmt.Sprintf("  %d sessions  •  %dh %dm focused  •  %d 🍅 lifetime  •  %d today",
		m.sessions, m.minutes/60, m.minutes%60, m.points, m.ledger.EarnedToday)

	nav := mutedStyle.Render("  ←/→: navigate weeks")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", successStyle.Render(totals), "", nav,
		),
	)
}
