package sequencer

import "errors"

// MultiSink fans every call out to each sink in order. All sinks are
// called even when one fails; the errors are joined.
type MultiSink []Sink

func (m MultiSink) Trigger(e Event) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Trigger(e))
	}
	return errors.Join(errs...)
}

func (m MultiSink) Light(cmd LightCommand) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Light(cmd))
	}
	return errors.Join(errs...)
}

func (m MultiSink) Clock() error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Clock())
	}
	return errors.Join(errs...)
}

// Discard is a Sink that drops everything.
type Discard struct{}

func (Discard) Trigger(Event) error     { return nil }
func (Discard) Light(LightCommand) error { return nil }
func (Discard) Clock() error             { return nil }

// SetTempo forwards to the sinks that carry tempo.
func (m MultiSink) SetTempo(bpm int) error {
	var errs []error
	for _, s := range m {
		if t, ok := s.(TempoSink); ok {
			errs = append(errs, t.SetTempo(bpm))
		}
	}
	return errors.Join(errs...)
}
