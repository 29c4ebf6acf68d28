package osc

import (
	"context"
	"net"

	goosc "github.com/hypebeast/go-osc/osc"
	"github.com/pkg/errors"

	"padseq/debug"
	"padseq/sequencer"
)

// maxPacket is the largest UDP payload.
const maxPacket = 65535

// Source listens for bridge messages on a UDP address.
type Source struct {
	addr     string
	controls sequencer.ControlMap
}

func NewSource(addr string, controls sequencer.ControlMap) *Source {
	return &Source{addr: addr, controls: controls}
}

// Listen binds the address and delivers decoded messages until ctx is
// done. Packets that fail to parse are logged and skipped.
func (s *Source) Listen(ctx context.Context, deliver func(sequencer.Message)) error {
	conn, err := net.ListenPacket("udp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.addr)
	}
	debug.Info("osc", "listening", "addr", conn.LocalAddr())
	return s.serve(ctx, conn, deliver)
}

func (s *Source) serve(ctx context.Context, conn net.PacketConn, deliver func(sequencer.Message)) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()

	buf := make([]byte, maxPacket)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "read")
		}

		packet, err := goosc.ParsePacket(string(buf[:n]))
		if err != nil {
			debug.Log("osc", "bad packet", "from", from, "err", err)
			continue
		}
		for _, m := range messages(packet) {
			msg := Decode(m, s.controls)
			if msg.Kind == sequencer.Unhandled {
				debug.Log("osc", "unhandled", "addr", m.Address, "args", m.Arguments)
				continue
			}
			deliver(msg)
		}
	}
}
