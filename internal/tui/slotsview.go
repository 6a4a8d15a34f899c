package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomato/internal/engine"
	"github.com/sadopc/pomato/internal/slots"
	"github.com/sadopc/pomato/internal/store"
)

type slotsViewModel struct {
	store   *store.Store
	ledger  *engine.Ledger
	machine *slots.Machine

	width  int
	height int

	bet    int
	reels  [3]slots.Symbol
	result *slots.Result
}

func newSlotsViewModel(s *store.Store, ledger *engine.Ledger, machine *slots.Machine) slotsViewModel {
	return slotsViewModel{
		store:   s,
		ledger:  ledger,
		machine: machine,
		bet:     1,
		reels:   [3]slots.Symbol{slots.Tomato, slots.Tomato, slots.Tomato},
	}
}

func (m *slotsViewModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m slotsViewModel) update(msg tea.Msg) (slotsViewModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		if m.bet > 1 {
			m.bet--
		}
	case key.Matches(keyMsg, keys.Right):
		if m.bet < m.ledger.Total {
			m.bet++
		}
	case key.Matches(keyMsg, keys.Spin), key.Matches(keyMsg, keys.Enter):
		return m.spin()
	}
	return m, nil
}

func (m slotsViewModel) spin() (slotsViewModel, tea.Cmd) {
	res, err := m.machine.Spin(m.bet, m.ledger.Spend, m.ledger.Award)
	switch {
	case errors.Is(err, slots.ErrInsufficientFunds):
		return m, status("Not enough tomato points!", true)
	case errors.Is(err, slots.ErrMinBet):
		return m, status("Minimum bet is 1 tomato point!", true)
	case err != nil:
		return m, status(fmt.Sprintf("Spin failed: %v", err), true)
	}

	m.reels = res.Reels
	m.result = &res

	if err := m.store.SaveLedger(m.ledger); err != nil {
		return m, status(fmt.Sprintf("Save error: %v", err), true)
	}

	if res.Win > 0 {
		return m, status(fmt.Sprintf("🎉 Won %d 🍅!\a", res.Win), false)
	}
	return m, status(fmt.Sprintf("Lost %d 🍅 — better luck next spin", res.Bet), false)
}

func (m slotsViewModel) view() string {
	w := m.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("🐯 Fortune Tiger Slots"))
	rows = append(rows, successStyle.Render(fmt.Sprintf("🍅 %d points", m.ledger.Total)))
	rows = append(rows, "")

	line := fmt.Sprintf("│ %s │ %s │ %s │", m.reels[0], m.reels[1], m.reels[2])
	rows = append(rows, timerStyle.Width(w-6).Render(line))
	rows = append(rows, "")

	if m.result != nil {
		if m.result.Win > 0 {
			rows = append(rows, successStyle.Width(w - 6).Align(lipgloss.Center).Render(fmt.Sprintf("WIN +%d 🍅", m.result.Win)))
		} else {
			rows = append(rows, errorStyle.Width(w - 6).Align(lipgloss.Center).Render(fmt.Sprintf("miss (-%d 🍅)", m.result.Bet)))
		}
		rows = append(rows, "")
	}

	rows = append(rows, normalItemStyle.Render(fmt.Sprintf("Bet: %d 🍅", m.bet)))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("←/→: adjust bet  s: spin"))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("3×💎 50x  3×⭐ 20x  3×🍅 10x  pairs pay too"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
