package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"trackview/internal/browser"
	"trackview/internal/render"
)

const defaultWidth = 100

// Model is the bubbletea model. body is the last redraw; it only changes
// when the coordinator asks for a redraw or the terminal is resized.
type Model struct {
	b       *browser.Browser
	width   int
	body    string
	busy    int
	redraws int
	lastErr string
}

func NewModel(b *browser.Browser) Model {
	return Model{b: b, width: defaultWidth}
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		m.b.Repaint()
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postMsg:
		msg.fn()
	case redrawMsg:
		m.redraws++
		m.body = render.Text(m.b.Frames(), m.b.Panels(), m.width)
	case busyMsg:
		if msg.on {
			m.busy++
		} else if m.busy > 0 {
			m.busy--
		}
	case failMsg:
		m.lastErr = msg.err.Error()
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		m.body = render.Text(m.b.Frames(), m.b.Panels(), m.width)
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.b.Pan(-0.5)
	case "right", "l":
		m.b.Pan(0.5)
	case "+", "=":
		m.b.Zoom(2)
	case "-", "_":
		m.b.Zoom(0.5)
	case "s":
		if len(m.b.Frames()) > 1 {
			m.b.Unsplit()
		} else {
			m.b.Split()
		}
	case "r":
		m.lastErr = ""
		m.b.Repaint()
	}
	return m, nil
}

func (m Model) View() string {
	loci := make([]string, 0, 2)
	for _, v := range m.b.Frames() {
		loci = append(loci, v.String())
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("trackview  " + strings.Join(loci, " | ")))
	sb.WriteString("\n\n")
	sb.WriteString(bodyStyle.Render(m.body))
	sb.WriteString("\n")

	st := m.b.Stats()
	status := fmt.Sprintf("%d redraw(s)  %d load(s)  %d failed", m.redraws, st.Dispatched, st.Failed)
	if m.busy > 0 {
		status = busyStyle.Render("loading…") + "  " + status
	}
	sb.WriteString(status)
	if m.lastErr != "" {
		sb.WriteString("  " + errStyle.Render(m.lastErr))
	}
	sb.WriteString("\n")
	sb.WriteString(footerStyle.Render("←/→ pan  +/- zoom  s split  r repaint  q quit"))
	return sb.String()
}
