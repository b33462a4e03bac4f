package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tilelay/pkg/pattern"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PatternListModel - Interactive pattern selection
// =============================================================================

// PatternSelection holds the result of the pattern selection.
type PatternSelection struct {
	Name       string
	Proportion int
}

// PatternListModel is the bubbletea model for interactive pattern selection.
// Up and down move between patterns, left and right between proportions.
type PatternListModel struct {
	Catalog    *pattern.Catalog
	Cursor     int
	Proportion int
	Selected   *PatternSelection
	Height     int
	Offset     int
}

// NewPatternListModel creates a new pattern list model.
func NewPatternListModel(cat *pattern.Catalog) PatternListModel {
	return PatternListModel{
		Catalog: cat,
		Height:  15,
	}
}

func (m PatternListModel) Init() tea.Cmd {
	return nil
}

func (m PatternListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Catalog.Patterns)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.Proportion = 0
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
				m.Proportion = 0
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "left", "h":
			if m.Proportion > 0 {
				m.Proportion--
			}
		case "right", "l":
			if n > 0 && m.Proportion < len(m.Catalog.Patterns[m.Cursor].TileProportion)-1 {
				m.Proportion++
			}
		case "enter":
			if n == 0 {
				return m, nil
			}
			m.Selected = &PatternSelection{
				Name:       m.Catalog.Patterns[m.Cursor].Name,
				Proportion: m.Proportion,
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PatternListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Pattern"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ pattern  ←/→ proportion  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Catalog.Patterns))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		d := m.Catalog.Patterns[i]
		cursor := "  "
		prop := 0
		if i == m.Cursor {
			cursor = "▸ "
			prop = m.Proportion
		}
		rows = append(rows, []string{cursor, d.Name, formatProportions(d.TileProportion, prop), fmt.Sprint(len(d.TileVertices))})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Pattern", "Proportions", "Tiles").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 3 {
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Catalog.Patterns))))

	return b.String()
}

// formatProportions lists proportions as num:den, bracketing the selected one.
func formatProportions(props []pattern.Proportion, selected int) string {
	parts := make([]string, len(props))
	for i, p := range props {
		s := fmt.Sprintf("%g:%g", p.Num, p.Den)
		if i == selected {
			s = "[" + s + "]"
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}
