package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/pomato/internal/engine"
	"github.com/sadopc/pomato/internal/store"
)

type storeViewModel struct {
	store  *store.Store
	ledger *engine.Ledger
	inv    *engine.Inventory

	width  int
	height int
	cursor int
}

func newStoreViewModel(s *store.Store, ledger *engine.Ledger, inv *engine.Inventory) storeViewModel {
	return storeViewModel{store: s, ledger: ledger, inv: inv}
}

func (m *storeViewModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m storeViewModel) update(msg tea.Msg) (storeViewModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	items := engine.Catalog()
	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Buy), key.Matches(keyMsg, keys.Enter):
		return m.buy(items[m.cursor])
	case key.Matches(keyMsg, keys.Use):
		return m.use(items[m.cursor])
	}
	return m, nil
}

func (m storeViewModel) buy(item engine.StoreItem) (storeViewModel, tea.Cmd) {
	err := m.inv.Purchase(item.ID, m.ledger.Spend)
	switch {
	case errors.Is(err, engine.ErrAlreadyOwned):
		return m, status(fmt.Sprintf("You already own %s", item.Name), true)
	case errors.Is(err, engine.ErrInsufficientPoints):
		return m, status(fmt.Sprintf("Not enough points for %s (need %d)", item.Name, item.Price), true)
	case err != nil:
		return m, status(fmt.Sprintf("Purchase failed: %v", err), true)
	}
	if cmd := m.persist(); cmd != nil {
		return m, cmd
	}
	return m, status(fmt.Sprintf("%s purchased for %d 🍅", item.Name, item.Price), false)
}

func (m storeViewModel) use(item engine.StoreItem) (storeViewModel, tea.Cmd) {
	err := m.inv.UseConsumable(item.ID)
	switch {
	case errors.Is(err, engine.ErrNotConsumable):
		return m, status(fmt.Sprintf("%s is a permanent item", item.Name), true)
	case errors.Is(err, engine.ErrNoneLeft):
		return m, status(fmt.Sprintf("No %s left — buy one first", item.Name), true)
	case err != nil:
		return m, status(fmt.Sprintf("Cannot use item: %v", err), true)
	}
	if cmd := m.persist(); cmd != nil {
		return m, cmd
	}
	return m, status(fmt.Sprintf("%s activated %s", item.Name, item.Icon), false)
}

// persist writes the ledger and inventory in one event turn. Returns a
// status command only on failure.
func (m storeViewModel) persist() tea.Cmd {
	if err := m.store.SaveLedger(m.ledger); err != nil {
		return status(fmt.Sprintf("Save error: %v", err), true)
	}
	if err := m.store.SaveInventory(m.inv); err != nil {
		return status(fmt.Sprintf("Save error: %v", err), true)
	}
	return nil
}

func (m storeViewModel) view() string {
	w := m.width - 4

	var rows []string
	balance := fmt.Sprintf("🍅 %d points  (today: %d)", m.ledger.Total, m.ledger.EarnedToday)
	rows = append(rows, titleStyle.Render("Tomato Store")+"   "+successStyle.Render(balance))
	rows = append(rows, "")

	for i, item := range engine.Catalog() {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		badge := ""
		if item.Consumable {
			if q := m.inv.ItemQuantity(item.ID); q > 0 {
				badge = successStyle.Render(fmt.Sprintf(" ×%d", q))
			}
		} else if m.inv.Owns(item.ID) {
			badge = successStyle.Render(" owned")
		}

		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s — %d 🍅", cursor, item.Icon, item.Name, item.Price))+badge)
		if i == m.cursor {
			rows = append(rows, mutedStyle.Render("     "+item.Description))
		}
	}

	if len(m.inv.ActiveEffects) > 0 {
		rows = append(rows, "")
		rows = append(rows, titleStyle.Render("Active Effects"))
		for _, e := range m.inv.ActiveEffects {
			var desc string
			switch e.Kind {
			case engine.EffectExtendBreak:
				desc = fmt.Sprintf("⏰ +%d min breaks, %d uses left", e.Value, e.RemainingUses)
			case engine.EffectDoublePoints:
				desc = fmt.Sprintf("🔥 ×%d points, %d uses left", e.Value, e.RemainingUses)
			}
			rows = append(rows, highlightStyle.Render("  "+desc))
		}
	}

	if m.inv.TimeBank > 0 {
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("🏦 Time bank: %d min", m.inv.TimeBank)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("b/enter: buy  u: use consumable"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
