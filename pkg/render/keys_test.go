package render

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-vampires/pkg/input"
)

func TestKeyState(t *testing.T) {
	t0 := time.Unix(1000, 0)
	tests := []struct {
		name   string
		events []*tcell.EventKey
		at     time.Duration
		want   input.Snapshot
	}{
		{
			name: "nothing pressed",
			want: input.Snapshot{Direction: input.None},
		},
		{
			name:   "wasd held",
			events: []*tcell.EventKey{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModShift)},
			at:     50 * time.Millisecond,
			want:   input.Snapshot{Direction: input.NorthEast},
		},
		{
			name:   "arrow released after window",
			events: []*tcell.EventKey{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)},
			at:     HoldWindow,
			want:   input.Snapshot{Direction: input.None},
		},
		{
			name:   "fire",
			events: []*tcell.EventKey{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)},
			at:     10 * time.Millisecond,
			want:   input.Snapshot{Fire: true},
		},
		{
			name:   "escape latches quit",
			events: []*tcell.EventKey{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
			at:     time.Hour,
			want:   input.Snapshot{Quit: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeyState(HoldWindow)
			for _, ev := range tt.events {
				k.Handle(ev, t0)
			}
			if got := k.Snapshot(t0.Add(tt.at)); got != tt.want {
				t.Errorf("Snapshot() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
