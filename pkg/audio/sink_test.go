package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/opd-ai/go-vampires/pkg/event"
	"github.com/opd-ai/go-vampires/pkg/logging"
)

// newOfflineSink returns a sink that mixes without opening a speaker.
func newOfflineSink() *Sink {
	s := NewSink(0.5, logging.Discard())
	s.initialized = true
	return s
}

func TestSink_CountsEventsWithoutSpeaker(t *testing.T) {
	bus := event.NewEventBus()
	s := NewSink(0.5, logging.Discard())
	s.Attach(bus)

	bus.Publish(event.NewEntityEvent(event.ProjectileFired, nil, 1, "", 0, 0))
	bus.Publish(event.NewImpactEvent(nil, 1, 2))
	bus.Publish(event.NewImpactEvent(nil, 3, 4))
	bus.Publish(&event.BaseEvent{EventType: event.HostileSpawned})

	if s.Played(event.ProjectileFired) != 1 || s.Played(event.Impact) != 2 {
		t.Errorf("played fired = %d, impact = %d", s.Played(event.ProjectileFired), s.Played(event.Impact))
	}
	if s.Played(event.HostileSpawned) != 0 {
		t.Error("sink should not listen to spawn events")
	}
	if s.Voices() != 0 {
		t.Errorf("Voices() = %d, want 0 without a speaker", s.Voices())
	}
}

func TestSink_MixesSounds(t *testing.T) {
	bus := event.NewEventBus()
	s := newOfflineSink()
	s.Attach(bus)

	bus.Publish(event.NewEntityEvent(event.ProjectileFired, nil, 1, "", 0, 0))
	bus.Publish(event.NewImpactEvent(nil, 1, 2))
	if s.Voices() != 2 {
		t.Fatalf("Voices() = %d, want 2", s.Voices())
	}

	// both effects are shorter than half a second
	buf := make([][2]float64, sampleRate.N(500*time.Millisecond))
	s.mixer.Stream(buf)
	if s.Voices() != 0 {
		t.Errorf("Voices() = %d after effects finished, want 0", s.Voices())
	}
}

func TestSink_AmbientStartsOnceAndStops(t *testing.T) {
	bus := event.NewEventBus()
	s := newOfflineSink()
	s.Attach(bus)

	bus.Publish(&event.BaseEvent{EventType: event.AmbientStart})
	bus.Publish(&event.BaseEvent{EventType: event.AmbientStart})
	if s.Voices() != 1 {
		t.Fatalf("Voices() = %d, want a single ambient loop", s.Voices())
	}

	buf := make([][2]float64, 1024)
	s.mixer.Stream(buf)
	if s.Voices() != 1 {
		t.Error("ambient loop should keep playing")
	}

	bus.Publish(event.NewSessionEvent(event.SessionEnded, nil, "quit", 10))
	s.mixer.Stream(buf)
	if s.Voices() != 0 {
		t.Errorf("Voices() = %d after session end, want 0", s.Voices())
	}
}

func TestSink_Detach(t *testing.T) {
	bus := event.NewEventBus()
	s := newOfflineSink()
	s.Attach(bus)
	s.Close()

	bus.Publish(event.NewImpactEvent(nil, 1, 2))
	if s.Played(event.Impact) != 0 {
		t.Error("closed sink should not receive events")
	}
	if bus.HandlerCount(event.Impact) != 0 {
		t.Error("Close should cancel subscriptions")
	}
}

func TestDrone_StaysInRange(t *testing.T) {
	d := newDrone(sampleRate)
	buf := make([][2]float64, 4096)
	n, ok := d.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}
	for i, s := range buf {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("sample %d = %v", i, s)
		}
	}
	if d.Err() != nil {
		t.Error("drone should never fail")
	}
}

func TestWithVolume_Silent(t *testing.T) {
	st := withVolume(newDrone(sampleRate), 0)
	buf := make([][2]float64, 256)
	st.Stream(buf)
	for _, s := range buf {
		if s[0] != 0 {
			t.Fatal("zero volume should be silent")
		}
	}
	var _ beep.Streamer = st
}
