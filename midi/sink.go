package midi

import (
	"sync"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"

	"padseq/sequencer"
)

// triggerVelocity is the velocity every trigger is sent with.
const triggerVelocity = 100

// Sender sends one MIDI message; gomidi.SendTo returns one.
type Sender func(msg gomidi.Message) error

// SinkConfig configures sampler output.
type SinkConfig struct {
	Channel uint8 // 0-based sampler channel
	Kit     DrumKit
}

// Sink sends triggers to a sampler or drum machine, lights to the
// controller and MIDI clock to a clock receiver. Nil senders are skipped.
type Sink struct {
	cfg     SinkConfig
	lights  *Controller
	sampler Sender
	clock   Sender

	mu      sync.Mutex
	started bool
}

func NewSink(cfg SinkConfig, lights *Controller, sampler, clock Sender) *Sink {
	return &Sink{cfg: cfg, lights: lights, sampler: sampler, clock: clock}
}

// Trigger sends a note on immediately followed by its note off, so drum
// voices fire once regardless of gate handling.
func (s *Sink) Trigger(e sequencer.Event) error {
	if s.sampler == nil {
		return nil
	}
	note, ok := s.cfg.Kit.Note(e.Note)
	if !ok {
		return errors.Errorf("no kit note for voice %d", e.Note)
	}
	if err := s.sampler(gomidi.NoteOn(s.cfg.Channel, note, triggerVelocity)); err != nil {
		return errors.Wrap(err, "note on")
	}
	return errors.Wrap(s.sampler(gomidi.NoteOff(s.cfg.Channel, note)), "note off")
}

func (s *Sink) Light(cmd sequencer.LightCommand) error {
	if s.lights == nil {
		return nil
	}
	return s.lights.Light(cmd)
}

// Clock sends one timing clock per tick, 24 per quarter note. The first
// call sends Start before it.
func (s *Sink) Clock() error {
	if s.clock == nil {
		return nil
	}

	s.mu.Lock()
	first := !s.started
	s.started = true
	s.mu.Unlock()

	if first {
		if err := s.clock(gomidi.Start()); err != nil {
			return errors.Wrap(err, "start")
		}
	}
	return errors.Wrap(s.clock(gomidi.TimingClock()), "clock")
}

// Stop sends MIDI Stop if the clock was started.
func (s *Sink) Stop() error {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()

	if s.clock == nil || !started {
		return nil
	}
	return s.clock(gomidi.Stop())
}
