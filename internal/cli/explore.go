package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierpart/pkg/hierpart"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Browse a hierarchical partition interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadTree(args[0], format)
			if err != nil {
				return err
			}
			prog := tea.NewProgram(newExploreModel(p), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = prog.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "input format: json, yaml or paths (default: from extension)")

	return cmd
}

// =============================================================================
// exploreModel - Interactive tree browser
// =============================================================================

// exploreModel is the bubbletea model for browsing one module at a time.
// The list shows the local partition of the current module: its children
// followed by its implicit singletons.
type exploreModel struct {
	p      *hierpart.Partition[string]
	trail  []hierpart.ModuleID // root to current module
	groups []hierpart.Group[string]
	cursor int
	offset int
	height int
}

func newExploreModel(p *hierpart.Partition[string]) exploreModel {
	m := exploreModel{p: p, height: 15}
	return m.enter(p.Root())
}

// current returns the module being listed.
func (m exploreModel) current() hierpart.ModuleID {
	return m.trail[len(m.trail)-1]
}

// enter makes id the current module.
func (m exploreModel) enter(id hierpart.ModuleID) exploreModel {
	m.trail = append(m.trail[:len(m.trail):len(m.trail)], id)
	m.groups = nil
	if !m.p.IsLeaf(id) {
		m.groups = m.p.Level(id)
	}
	m.cursor, m.offset = 0, 0
	return m
}

// back returns to the parent module, restoring the cursor on the child.
func (m exploreModel) back() exploreModel {
	if len(m.trail) < 2 {
		return m
	}
	from := m.current()
	parent := m.trail[len(m.trail)-2]
	m.trail = m.trail[:len(m.trail)-2]
	m = m.enter(parent)
	for i, g := range m.groups {
		if g.Module == from {
			m.cursor = i
			m.scroll()
		}
	}
	return m
}

func (m *exploreModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
			}
		case "down", "j":
			if m.cursor < len(m.groups)-1 {
				m.cursor++
				m.scroll()
			}
		case "enter", "right", "l":
			if m.cursor < len(m.groups) && !m.groups[m.cursor].IsImplicit() {
				return m.enter(m.groups[m.cursor].Module), nil
			}
		case "backspace", "left", "h":
			return m.back(), nil
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
		m.scroll()
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder
	id := m.current()

	crumbs := make([]string, len(m.trail))
	for i, t := range m.trail {
		crumbs[i] = fmt.Sprint(t)
	}
	b.WriteString(StyleTitle.Render("Module " + strings.Join(crumbs, " "+iconInfo+" ")))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  ⌫ back  q quit"))
	b.WriteString("\n\n")

	implicit := 0
	for _, g := range m.groups {
		if g.IsImplicit() {
			implicit++
		}
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("depth %d · %d elements · %d children · %d implicit",
		m.p.Depth(id), m.p.Size(id), m.p.BranchingFactor(id), implicit)))
	b.WriteString("\n\n")

	if len(m.groups) == 0 {
		b.WriteString(listNormalStyle.Render(truncateElements(m.p.Elements(id), 20)))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.groups))
	for i := m.offset; i < end; i++ {
		g := m.groups[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		var line string
		if g.IsImplicit() {
			line = listDimStyle.Render("· " + g.Elements[0])
		} else {
			line = style.Render(fmt.Sprintf("%d (%d)", g.Module, len(g.Elements))) + " " +
				listDimStyle.Render(truncateElements(g.Elements, 6))
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.groups))))

	return b.String()
}
