package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-vampires/pkg/session"
)

func TestPumpEvents_StopsWhenDone(t *testing.T) {
	poll := func() tcell.Event {
		return tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)
	}
	out := make(chan tcell.Event, 1)
	done := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		pumpEvents(poll, out, done)
		close(finished)
	}()

	<-out // the pump is running and out is about to fill up again
	close(done)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("pumpEvents kept blocking on a full channel after done was closed")
	}
}

func TestPumpEvents_StopsOnNilEvent(t *testing.T) {
	events := []tcell.Event{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), nil}
	poll := func() tcell.Event {
		ev := events[0]
		events = events[1:]
		return ev
	}
	out := make(chan tcell.Event, 4)

	pumpEvents(poll, out, make(chan struct{}))

	if len(out) != 1 {
		t.Errorf("forwarded %d events, want 1", len(out))
	}
}

func TestBoxAssets(t *testing.T) {
	assets := boxAssets([]string{"bat", "blob"})
	if len(assets.Variants) != 2 || len(assets.Variants["bat"]) != 1 {
		t.Errorf("variants = %v", assets.Variants)
	}
	for _, facing := range []string{"up", "down", "left", "right"} {
		if assets.PlayerAnimations[facing] == nil {
			t.Errorf("missing %q animation", facing)
		}
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		reason string
		want   string
	}{
		{session.ReasonCaught, "Caught after 12.3s."},
		{session.ReasonQuit, "Quit after 12.3s."},
	}
	for _, tt := range tests {
		s := &session.Session{Reason: tt.reason, Elapsed: 12340 * time.Millisecond}
		if got := summary(s); got != tt.want {
			t.Errorf("summary(%q) = %q, want %q", tt.reason, got, tt.want)
		}
	}
}
