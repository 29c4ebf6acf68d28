package osc

import (
	"fmt"
	"net"
	"strconv"
	"sync"

	goosc "github.com/hypebeast/go-osc/osc"
	"github.com/pkg/errors"

	"padseq/sequencer"
)

// Clock addresses. AddressPulse follows the oscsync protocol.
const (
	AddressO2MClock = "/*/clock"
	AddressPulse    = "/sync/pulse"
)

// Clock protocols.
const (
	ClockO2M     = "o2m"
	ClockOSCSync = "oscsync"
)

// lightChannel is the controller channel pad lights are addressed on.
const lightChannel = 1

// Sender delivers one packet. *goosc.Client satisfies it.
type Sender interface {
	Send(packet goosc.Packet) error
}

// SinkConfig names the controller and the receivers' addresses.
type SinkConfig struct {
	Controller    string // address prefix, e.g. "atom"
	SamplerPrefix string // sampler triggers go to SamplerPrefix/<note>
	ClockProtocol string
	SelectCC      int
	BeatCC        int
}

// Sink sends lights to the controller, triggers to the sampler and clock
// pulses, all as OSC.
type Sink struct {
	cfg     SinkConfig
	bridge  Sender
	sampler Sender

	mu     sync.Mutex
	ticks  int
	pulses int32
	tempo  float32
}

// NewSink sends everything through bridge, except sampler triggers when
// sampler is non-nil.
func NewSink(cfg SinkConfig, bridge, sampler Sender) *Sink {
	if sampler == nil {
		sampler = bridge
	}
	if cfg.SamplerPrefix == "" {
		cfg.SamplerPrefix = "/sampler"
	}
	return &Sink{
		cfg:     cfg,
		bridge:  bridge,
		sampler: sampler,
		tempo:   sequencer.DefaultBPM,
	}
}

// NewClient resolves "host:port" into a go-osc client.
func NewClient(addr string) (*goosc.Client, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse address %q", addr)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, errors.Errorf("bad port in %q", addr)
	}
	return goosc.NewClient(host, port), nil
}

func (s *Sink) address(message string) string {
	return fmt.Sprintf("/%s/%s", s.cfg.Controller, message)
}

func onValue(on bool) int32 {
	if on {
		return sequencer.ButtonPressed
	}
	return sequencer.ButtonReleased
}

// Handshake puts the controller into native control mode and clears the
// pad lights.
func (s *Sink) Handshake() error {
	msg := goosc.NewMessage(s.address("note_off"), int32(16), int32(0), int32(127))
	if err := s.bridge.Send(msg); err != nil {
		return errors.Wrap(err, "handshake")
	}
	for pad := 1; pad <= sequencer.Voices; pad++ {
		if err := s.Light(sequencer.LightCommand{Light: sequencer.Pad(pad)}); err != nil {
			return err
		}
	}
	return nil
}

// Trigger fires the sampler slot for the voice.
func (s *Sink) Trigger(e sequencer.Event) error {
	msg := goosc.NewMessage(fmt.Sprintf("%s/%d", s.cfg.SamplerPrefix, e.Note))
	return errors.Wrapf(s.sampler.Send(msg), "trigger %d", e.Note)
}

// Light sets a pad with note_on, or an indicator button with
// control_change.
func (s *Sink) Light(cmd sequencer.LightCommand) error {
	var msg *goosc.Message
	switch cmd.Light.Kind {
	case sequencer.PadLight:
		note := int32(sequencer.NoteForPad(cmd.Light.Index))
		msg = goosc.NewMessage(s.address("note_on"), int32(lightChannel), note, onValue(cmd.On))
	case sequencer.SelectLight:
		msg = goosc.NewMessage(s.address("control_change"), int32(lightChannel), int32(s.cfg.SelectCC), onValue(cmd.On))
	case sequencer.BeatLight:
		msg = goosc.NewMessage(s.address("control_change"), int32(lightChannel), int32(s.cfg.BeatCC), onValue(cmd.On))
	default:
		return nil
	}
	return errors.Wrapf(s.bridge.Send(msg), "light %v", cmd.Light)
}

// Clock is called once per tick. o2m gets a pulse every tick (24 per
// quarter, as MIDI clock); oscsync gets one pulse per quarter note carrying
// the running count and tempo.
func (s *Sink) Clock() error {
	if s.cfg.ClockProtocol != ClockOSCSync {
		return errors.Wrap(s.bridge.Send(goosc.NewMessage(AddressO2MClock)), "clock")
	}

	s.mu.Lock()
	tick := s.ticks
	s.ticks++
	if tick%sequencer.TicksPerQuarter != 0 {
		s.mu.Unlock()
		return nil
	}
	count := s.pulses
	s.pulses++
	tempo := s.tempo
	s.mu.Unlock()

	return errors.Wrap(s.bridge.Send(goosc.NewMessage(AddressPulse, count, tempo)), "pulse")
}

// SetTempo updates the tempo carried by oscsync pulses.
func (s *Sink) SetTempo(bpm int) error {
	s.mu.Lock()
	s.tempo = float32(bpm)
	s.mu.Unlock()
	return nil
}
