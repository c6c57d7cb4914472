package render

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-vampires/pkg/input"
)

// HoldWindow is how long a key counts as held after its last press.
const HoldWindow = 200 * time.Millisecond

type control int

const (
	ctlUp control = iota
	ctlDown
	ctlLeft
	ctlRight
	ctlFire
	ctlCount
)

// KeyState turns terminal key events into held-key state. Terminals report
// presses and auto-repeats but never releases, so a key stays held until
// the window passes without another press.
type KeyState struct {
	window  time.Duration
	pressed [ctlCount]time.Time
	quit    bool
}

// NewKeyState creates a KeyState with the given hold window.
func NewKeyState(window time.Duration) *KeyState {
	return &KeyState{window: window}
}

// Handle records a key event received at now.
func (k *KeyState) Handle(ev *tcell.EventKey, now time.Time) {
	switch ev.Key() {
	case tcell.KeyUp:
		k.pressed[ctlUp] = now
	case tcell.KeyDown:
		k.pressed[ctlDown] = now
	case tcell.KeyLeft:
		k.pressed[ctlLeft] = now
	case tcell.KeyRight:
		k.pressed[ctlRight] = now
	case tcell.KeyEscape, tcell.KeyCtrlC:
		k.quit = true
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'w':
			k.pressed[ctlUp] = now
		case 's':
			k.pressed[ctlDown] = now
		case 'a':
			k.pressed[ctlLeft] = now
		case 'd':
			k.pressed[ctlRight] = now
		case ' ':
			k.pressed[ctlFire] = now
		case 'q':
			k.quit = true
		}
	}
}

func (k *KeyState) held(c control, now time.Time) bool {
	t := k.pressed[c]
	return !t.IsZero() && now.Sub(t) < k.window
}

// Snapshot returns the controller state at now.
func (k *KeyState) Snapshot(now time.Time) input.Snapshot {
	return input.Snapshot{
		Quit: k.quit,
		Fire: k.held(ctlFire, now),
		Direction: input.FromKeys(
			k.held(ctlUp, now),
			k.held(ctlDown, now),
			k.held(ctlLeft, now),
			k.held(ctlRight, now),
		),
	}
}
