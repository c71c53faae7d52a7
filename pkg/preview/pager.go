package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan = lipgloss.Color("51")
	colorDim  = lipgloss.Color("240")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Padding(0, 1)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	Top    key.Binding
	Bottom key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PgUp: key.NewBinding(
		key.WithKeys("pgup", "b"),
		key.WithHelp("pgup/b", "page up"),
	),
	PgDown: key.NewBinding(
		key.WithKeys("pgdown", "f", " "),
		key.WithHelp("pgdn/f", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("G", "bottom"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// pager is a Bubble Tea model scrolling pre-rendered content.
type pager struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newPager(title, content string) pager {
	return pager{title: title, content: content}
}

func (p pager) Init() tea.Cmd { return nil }

func (p pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - lipgloss.Height(p.header()) - lipgloss.Height(p.footer())
		if h < 1 {
			h = 1
		}
		if !p.ready {
			p.viewport = viewport.New(msg.Width, h)
			p.viewport.SetContent(p.content)
			p.ready = true
		} else {
			p.viewport.Width = msg.Width
			p.viewport.Height = h
		}
		return p, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return p, tea.Quit
		case key.Matches(msg, keys.Top):
			p.viewport.GotoTop()
			return p, nil
		case key.Matches(msg, keys.Bottom):
			p.viewport.GotoBottom()
			return p, nil
		case key.Matches(msg, keys.PgUp):
			p.viewport.HalfViewUp()
			return p, nil
		case key.Matches(msg, keys.PgDown):
			p.viewport.HalfViewDown()
			return p, nil
		}
	}
	var cmd tea.Cmd
	if p.ready {
		p.viewport, cmd = p.viewport.Update(msg)
	}
	return p, cmd
}

func (p pager) View() string {
	if !p.ready {
		return "\n  Loading..."
	}
	return p.header() + "\n" + p.viewport.View() + "\n" + p.footer()
}

func (p pager) header() string {
	return titleStyle.Render(p.title)
}

func (p pager) footer() string {
	pct := 100.0
	if p.ready && p.viewport.TotalLineCount() > p.viewport.VisibleLineCount() {
		pct = p.viewport.ScrollPercent() * 100
	}
	help := []string{
		keys.Up.Help().Key + " " + keys.Up.Help().Desc,
		keys.Down.Help().Key + " " + keys.Down.Help().Desc,
		keys.PgDown.Help().Key + " " + keys.PgDown.Help().Desc,
		keys.Quit.Help().Key + " " + keys.Quit.Help().Desc,
	}
	return footerStyle.Render(fmt.Sprintf("%3.0f%%  %s", pct, strings.Join(help, " · ")))
}

// Run opens the pager on content and blocks until the user quits.
func Run(title, content string) error {
	prog := tea.NewProgram(newPager(title, content), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run pager: %w", err)
	}
	return nil
}
