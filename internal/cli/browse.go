package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/FunnySam/runelite/pkg/overlay"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listStatusStyle   = lipgloss.NewStyle().Foreground(colorGreen)
)

func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <manifest.toml>",
		Short: "Interactively browse overlays in draw order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, store, err := c.openRegistry(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer store.Close()

			p := tea.NewProgram(NewBrowseModel(reg),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
}

// Registry is the part of overlay.Manager the browser drives.
type Registry interface {
	Overlays() []overlay.Overlay
	Remove(o overlay.Overlay) bool
	ResetOverlay(o overlay.Overlay)
}

// BrowseModel is the bubbletea model listing overlays in draw order.
// r resets the stored placement of the selected overlay, x unregisters it.
type BrowseModel struct {
	Registry Registry
	Overlays []overlay.Overlay
	Cursor   int
	Offset   int
	Height   int
	Status   string
}

// NewBrowseModel creates a browser over reg's current overlays.
func NewBrowseModel(reg Registry) BrowseModel {
	return BrowseModel{
		Registry: reg,
		Overlays: reg.Overlays(),
		Height:   15,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Overlays)-1 {
				m.Cursor++
			}
		case "r":
			if o := m.selected(); o != nil {
				clearPreferences(o)
				m.Registry.ResetOverlay(o)
				m.Status = "reset " + o.Name()
				m.refresh()
			}
		case "x":
			if o := m.selected(); o != nil {
				m.Registry.Remove(o)
				m.Status = "removed " + o.Name()
				m.refresh()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	m.scroll()
	return m, nil
}

func (m BrowseModel) selected() overlay.Overlay {
	if m.Cursor < 0 || m.Cursor >= len(m.Overlays) {
		return nil
	}
	return m.Overlays[m.Cursor]
}

// refresh reloads the overlay list, keeping the cursor in range.
func (m *BrowseModel) refresh() {
	m.Overlays = m.Registry.Overlays()
	m.Cursor = min(m.Cursor, max(len(m.Overlays)-1, 0))
}

func (m *BrowseModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Overlays"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  r reset  x remove  q quit"))
	b.WriteString("\n\n")

	if len(m.Overlays) == 0 {
		b.WriteString(listDimStyle.Render("  no overlays registered"))
		b.WriteString("\n")
	}

	end := min(m.Offset+m.Height, len(m.Overlays))
	for i := m.Offset; i < end; i++ {
		o := m.Overlays[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-24s %-14s %-20s %-8s %s", cursor,
			o.Name(), overlay.EffectiveLayer(o), o.Position(), o.Priority(), orUnset(o.PreferredLocation()))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Overlays)), len(m.Overlays))))
	if m.Status != "" {
		b.WriteString("  " + listStatusStyle.Render(m.Status))
	}
	return b.String()
}

// clearPreferences drops o's in-memory preferences so the registry regroups
// it by its declared layer once the stored values are gone.
func clearPreferences(o overlay.Overlay) {
	o.SetPreferredLocation(nil)
	o.SetPreferredSize(nil)
	o.SetPreferredPosition(nil)
}
