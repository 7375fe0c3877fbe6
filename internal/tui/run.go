package tui

import (
	"context"
	stderrs "errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirkon/errors"

	"trackview/internal/browser"
)

// Run shows b until the user quits or ctx is done. bridge must be the
// browser's poster and attached surface.
func Run(ctx context.Context, b *browser.Browser, bridge *Bridge) error {
	p := tea.NewProgram(NewModel(b), tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Start(p.Send)
	defer bridge.Stop()

	if _, err := p.Run(); err != nil && !stderrs.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run terminal ui")
	}
	return nil
}
