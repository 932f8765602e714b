package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chaostower/pkg/pipeline"
	"github.com/matzehuels/chaostower/pkg/presets"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// presetEntry is one row of the preset list, for either engine.
type presetEntry struct {
	Engine      string
	Name        string
	Description string
	Summary     string
}

// presetEntries flattens s into display rows, chaos presets first.
func presetEntries(s presets.Set) []presetEntry {
	entries := make([]presetEntry, 0, len(s.Chaos)+len(s.IFS))
	for _, p := range s.Chaos {
		entries = append(entries, presetEntry{pipeline.EngineChaos, p.Name, p.Description, chaosSummary(p)})
	}
	for _, p := range s.IFS {
		entries = append(entries, presetEntry{pipeline.EngineIFS, p.Name, p.Description, ifsSummary(p)})
	}
	return entries
}

func chaosSummary(p presets.Chaos) string {
	parts := []string{fmt.Sprintf("%d-gon", p.Polygon), "jump " + p.Jump}
	if p.Midpoints {
		parts = append(parts, "midpoints")
	}
	if p.Center {
		parts = append(parts, "center")
	}
	if p.Window > 0 {
		rule := fmt.Sprintf("window %d offset %d", p.Window, p.Offset)
		if p.Symmetric {
			rule += " symmetric"
		}
		parts = append(parts, rule)
	}
	return strings.Join(parts, ", ")
}

func ifsSummary(p presets.IFS) string {
	n := 0
	for _, line := range strings.FieldsFunc(p.Maps, func(r rune) bool { return r == '\n' || r == ';' }) {
		if s := strings.TrimSpace(line); s != "" && !strings.HasPrefix(s, "#") {
			n++
		}
	}
	mode := p.Mode
	if mode == "" {
		mode = pipeline.DefaultMode
	}
	return fmt.Sprintf("%d maps, %s", n, mode)
}

// presetTable renders entries as a table. cursor < 0 highlights nothing.
func presetTable(entries []presetEntry, offset, cursor int) *table.Table {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Engine, e.Name, e.Description, e.Summary}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Engine", "Name", "Description", "Parameters").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if offset+row == cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if col == 0 || col == 3 {
				return base.Foreground(colorDim)
			}
			return base
		})
}

// =============================================================================
// PresetListModel - Interactive preset selection
// =============================================================================

// PresetListModel is the bubbletea model for interactive preset selection.
type PresetListModel struct {
	Entries  []presetEntry
	Cursor   int
	Selected *presetEntry
	Height   int
	Offset   int
}

// NewPresetListModel creates a new preset list model.
func NewPresetListModel(entries []presetEntry) PresetListModel {
	return PresetListModel{Entries: entries, Height: 15}
}

func (m PresetListModel) Init() tea.Cmd {
	return nil
}

func (m PresetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entries) == 0 {
				return m, tea.Quit
			}
			e := m.Entries[m.Cursor]
			m.Selected = &e
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

func (m PresetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ generate  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	b.WriteString(presetTable(m.Entries[m.Offset:end], m.Offset, m.Cursor).Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
