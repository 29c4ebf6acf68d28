package midi

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// portTimeout bounds port enumeration; CoreMIDI can hang.
const portTimeout = 3 * time.Second

// ListPorts enumerates input and output ports.
func ListPorts() (ins []drivers.In, outs []drivers.Out, err error) {
	type portsResult struct {
		ins  []drivers.In
		outs []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r.ins, r.outs, nil
	case <-time.After(portTimeout):
		return nil, nil, errors.New("timed out listing MIDI ports")
	}
}

// matchPort returns the index of the first name containing want,
// ignoring case, or -1.
func matchPort(names []string, want string) int {
	want = strings.ToLower(want)
	if want == "" {
		return -1
	}
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			return i
		}
	}
	return -1
}

// FindIn looks up an input port by name substring.
func FindIn(name string) (drivers.In, error) {
	ins, _, err := ListPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(ins))
	for i, p := range ins {
		names[i] = p.String()
	}
	if i := matchPort(names, name); i >= 0 {
		return ins[i], nil
	}
	return nil, errors.Errorf("no MIDI input matching %q", name)
}

// FindOut looks up an output port by name substring.
func FindOut(name string) (drivers.Out, error) {
	_, outs, err := ListPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, p := range outs {
		names[i] = p.String()
	}
	if i := matchPort(names, name); i >= 0 {
		return outs[i], nil
	}
	return nil, errors.Errorf("no MIDI output matching %q", name)
}

// OpenSender finds and opens an output port. An empty name returns a nil
// sender and no error.
func OpenSender(name string) (func(gomidi.Message) error, error) {
	if name == "" {
		return nil, nil
	}
	out, err := FindOut(name)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(out)
	if err != nil {
		return nil, errors.Wrapf(err, "open output %s", out)
	}
	return send, nil
}
