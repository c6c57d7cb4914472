// Package audio plays short tones for session events and a low ambient drone.
// It only listens on the event bus and never feeds back into the simulation.
package audio

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-vampires/pkg/event"
	"github.com/opd-ai/go-vampires/pkg/logging"
)

const sampleRate = beep.SampleRate(44100)

// Sink turns bus events into sounds on a shared mixer.
type Sink struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ambient     *beep.Ctrl
	volume      float64
	initialized bool
	subs        []*event.Subscription
	played      map[event.Type]int
	logger      *logging.Logger
}

// NewSink creates a silent sink. Call Initialize to open the speaker.
func NewSink(volume float64, logger *logging.Logger) *Sink {
	return &Sink{
		mixer:  &beep.Mixer{},
		volume: volume,
		played: make(map[event.Type]int),
		logger: logger,
	}
}

// Initialize opens the speaker and starts draining the mixer.
func (s *Sink) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return logging.WrapError(err, "speaker init")
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Attach subscribes the sink to the events it voices.
func (s *Sink) Attach(bus *event.Bus) {
	s.subs = append(s.subs,
		bus.Subscribe(event.ProjectileFired, s.handle),
		bus.Subscribe(event.Impact, s.handle),
		bus.Subscribe(event.AmbientStart, s.handle),
		bus.Subscribe(event.SessionEnded, s.handle),
	)
}

// Detach cancels every subscription made by Attach.
func (s *Sink) Detach() {
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
}

func (s *Sink) handle(e event.Event) {
	s.mu.Lock()
	s.played[e.GetType()]++
	s.mu.Unlock()

	switch e.GetType() {
	case event.ProjectileFired:
		s.play(shotSound(s.volume))
	case event.Impact:
		s.play(impactSound(s.volume))
	case event.AmbientStart:
		s.startAmbient()
	case event.SessionEnded:
		s.stopAmbient()
	}
}

// Played returns how many events of type t the sink has handled.
func (s *Sink) Played(t event.Type) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played[t]
}

// Voices returns the number of streamers currently in the mixer.
func (s *Sink) Voices() int {
	speaker.Lock()
	defer speaker.Unlock()
	return s.mixer.Len()
}

func (s *Sink) play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// nothing drains the mixer without a speaker
	if !s.initialized || st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Sink) startAmbient() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	if s.ambient != nil && !s.ambient.Paused {
		return
	}
	s.ambient = &beep.Ctrl{Streamer: withVolume(newDrone(sampleRate), s.volume*0.4)}
	speaker.Lock()
	s.mixer.Add(s.ambient)
	speaker.Unlock()
	s.logger.Debug(context.Background(), "Ambient loop started")
}

func (s *Sink) stopAmbient() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ambient == nil {
		return
	}
	speaker.Lock()
	s.ambient.Paused = true
	s.ambient.Streamer = nil
	speaker.Unlock()
}

// Close stops every sound and detaches from the bus.
func (s *Sink) Close() {
	s.Detach()
	s.stopAmbient()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

func shotSound(volume float64) beep.Streamer {
	tone, err := generators.SineTone(sampleRate, 880)
	if err != nil {
		return nil
	}
	return withVolume(beep.Take(sampleRate.N(60*time.Millisecond), tone), volume*0.5)
}

func impactSound(volume float64) beep.Streamer {
	low, err := generators.SineTone(sampleRate, 110)
	if err != nil {
		return nil
	}
	mid, err := generators.SineTone(sampleRate, 165)
	if err != nil {
		return nil
	}
	n := sampleRate.N(150 * time.Millisecond)
	return withVolume(beep.Mix(beep.Take(n, low), beep.Take(n, mid)), volume*0.4)
}

// withVolume scales a streamer linearly; zero or less is silent.
func withVolume(st beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: st, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: st, Base: 2, Volume: math.Log2(vol)}
}

// drone is an endless low hum that swells over a four second cycle.
type drone struct {
	sr    beep.SampleRate
	pos   int
	cycle int
}

func newDrone(sr beep.SampleRate) *drone {
	return &drone{sr: sr, cycle: sr.N(4 * time.Second)}
}

func (d *drone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(d.pos) / float64(d.sr)
		phase := float64(d.pos%d.cycle) / float64(d.cycle)
		amp := 0.2 * (0.6 + 0.4*math.Sin(2*math.Pi*phase))
		v := amp * (math.Sin(2*math.Pi*55*t) + 0.5*math.Sin(2*math.Pi*82.5*t)) / 1.5
		samples[i][0] = v
		samples[i][1] = v
		d.pos++
	}
	return len(samples), true
}

func (d *drone) Err() error {
	return nil
}
