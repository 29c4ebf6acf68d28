package midi

import (
	"context"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"padseq/debug"
	"padseq/sequencer"
)

// ControllerConfig describes the pad controller's MIDI layout.
type ControllerConfig struct {
	Channel  uint8 // 0-based channel lights are sent on
	Controls sequencer.ControlMap
	SelectCC uint8
	BeatCC   uint8
}

// Controller is a pad controller reached directly over MIDI. It is both
// an input Source and the light half of the output.
type Controller struct {
	cfg  ControllerConfig
	in   drivers.In
	send func(msg gomidi.Message) error
}

// OpenController opens the controller's ports. Either port may be nil:
// without an input Listen fails, without an output lights are dropped.
func OpenController(in drivers.In, out drivers.Out, cfg ControllerConfig) (*Controller, error) {
	c := &Controller{cfg: cfg, in: in}
	if out != nil {
		send, err := gomidi.SendTo(out)
		if err != nil {
			return nil, errors.Wrap(err, "open output")
		}
		c.send = send
	}
	return c, nil
}

// Listen delivers decoded controller input until ctx is done.
func (c *Controller) Listen(ctx context.Context, deliver func(sequencer.Message)) error {
	if c.in == nil {
		return errors.New("controller has no input port")
	}
	stop, err := gomidi.ListenTo(c.in, func(msg gomidi.Message, timestampms int32) {
		m := Decode(msg, c.cfg.Controls)
		if m.Kind == sequencer.Unhandled {
			debug.Log("midi", "unhandled", "msg", msg.String())
			return
		}
		deliver(m)
	})
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer stop()

	debug.Info("midi", "listening", "port", c.in.String())
	<-ctx.Done()
	return ctx.Err()
}

// Light turns a pad (by its note) or an indicator button (by CC) on or off.
func (c *Controller) Light(cmd sequencer.LightCommand) error {
	if c.send == nil {
		return nil
	}
	vel := velocityFor(cmd.On)
	switch cmd.Light.Kind {
	case sequencer.PadLight:
		note := uint8(sequencer.NoteForPad(cmd.Light.Index))
		return c.send(gomidi.NoteOn(c.cfg.Channel, note, vel))
	case sequencer.SelectLight:
		return c.send(gomidi.ControlChange(c.cfg.Channel, c.cfg.SelectCC, vel))
	case sequencer.BeatLight:
		return c.send(gomidi.ControlChange(c.cfg.Channel, c.cfg.BeatCC, vel))
	}
	return nil
}

// ClearLights switches every pad off.
func (c *Controller) ClearLights() error {
	for pad := 1; pad <= sequencer.Voices; pad++ {
		if err := c.Light(sequencer.LightCommand{Light: sequencer.Pad(pad)}); err != nil {
			return err
		}
	}
	return nil
}

// Close clears the lights. Listen stops its own port when ctx ends.
func (c *Controller) Close() error {
	return c.ClearLights()
}
