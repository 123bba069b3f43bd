package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/artprint-il/artprint/pkg/basket"
	"github.com/artprint-il/artprint/pkg/pricing"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BasketListModel - Interactive basket browsing
// =============================================================================

// BasketListModel is the bubbletea model for browsing basket items.
// Removals and quantity changes are collected in Removed and Quantities
// and applied by the caller after the program exits.
type BasketListModel struct {
	Items       []basket.Item
	Cursor      int
	Height      int
	Offset      int
	Removed     []string
	Quantities  map[string]int
	maxQuantity int

	marked map[string]bool
}

// NewBasketListModel creates a new basket list model.
func NewBasketListModel(items []basket.Item, maxQuantity int) BasketListModel {
	return BasketListModel{
		Items:       items,
		Height:      15,
		maxQuantity: maxQuantity,
		marked:      make(map[string]bool),
	}
}

func (m BasketListModel) Init() tea.Cmd {
	return nil
}

func (m BasketListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			// Abandon without applying changes.
			m.Removed = nil
			m.Quantities = nil
			return m, tea.Quit
		case "q", "enter":
			for _, it := range m.Items {
				if m.marked[it.ID] {
					m.Removed = append(m.Removed, it.ID)
				}
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "x", "d":
			id := m.Items[m.Cursor].ID
			m.marked[id] = !m.marked[id]
		case "+", "=":
			it := &m.Items[m.Cursor]
			if it.Quantity < m.maxQuantity {
				it.Quantity++
				m.recordQuantity(it.ID, it.Quantity)
			}
		case "-":
			it := &m.Items[m.Cursor]
			if it.Quantity > 1 {
				it.Quantity--
				m.recordQuantity(it.ID, it.Quantity)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// recordQuantity notes a pending quantity change for the caller to apply.
func (m *BasketListModel) recordQuantity(id string, qty int) {
	if m.Quantities == nil {
		m.Quantities = make(map[string]int)
	}
	m.Quantities[id] = qty
}

func (m BasketListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Basket"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  +/- quantity  x mark for removal  ⏎ apply  esc cancel"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		mark := ""
		if m.marked[it.ID] {
			mark = "✗"
		}

		rows = append(rows, []string{
			cursor,
			it.Image.Name,
			sizeLabel(it.CanvasSize.Width, it.CanvasSize.Height),
			it.CanvasOptions.SideColor,
			strconv.Itoa(it.Quantity),
			pricing.FormatPrice(it.TotalPrice * it.Quantity),
			formatRelativeTime(it.AddedAt),
			mark,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Image", "Size", "Color", "Qty", "Price", "Added", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Items) {
				return lipgloss.NewStyle()
			}
			it := m.Items[actualIdx]

			base := lipgloss.NewStyle()
			switch {
			case m.marked[it.ID]:
				base = base.Foreground(colorRed)
			case actualIdx == m.Cursor:
				base = base.Foreground(colorCyan).Bold(true)
			case col == 6:
				base = base.Foreground(colorDim)
			default:
				base = base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	summary := basket.Summarize(m.Items)
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  ", m.Cursor+1, len(m.Items))))
	b.WriteString(StylePrice.Render(pricing.FormatPrice(summary.TotalPrice)))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d prints", summary.TotalItems)))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
