// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is run and fed back
// until the model settles, so no tea.Program or goroutine juggling is
// needed in test code.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds Cmd chains so a model that always returns a Cmd
// cannot hang a test.
const MaxDrainDepth = 50

// cmdTimeout skips Cmds that block on timers (tickers, blink).
const cmdTimeout = 50 * time.Millisecond

// Driver feeds messages to a tea.Model and drains its Cmds.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has been returned.
	Quitting bool
}

func New(t *testing.T, model tea.Model) *Driver {
	t.Helper()
	return &Driver{T: t, Model: model}
}

// DrainInit runs the model's Init Cmd.
func (d *Driver) DrainInit() *Driver {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
	return d
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	d.drain(cmd, 0)
}

// PressKey sends a single rune key press.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyDown})
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := runWithTimeout(cmd)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
	default:
		updated, next := d.Model.Update(msg)
		d.Model = updated
		d.drain(next, depth+1)
	}
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
