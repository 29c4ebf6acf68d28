package sequencer

import "context"

// Event is a musical trigger for one voice. Note is the voice number
// (1-16); sinks translate it to whatever their receiver expects.
type Event struct {
	Note int
}

// Generator produces the events due at a tick. Generators are values and
// never change when queried.
type Generator interface {
	EventsForTick(tick int) []Event
}

// Source yields decoded controller messages until ctx is done or the
// underlying transport fails. deliver may be called from any goroutine.
type Source interface {
	Listen(ctx context.Context, deliver func(Message)) error
}

// Sink accepts everything the scheduler emits.
type Sink interface {
	Trigger(e Event) error
	Light(cmd LightCommand) error
	Clock() error
}

// TempoSink is implemented by sinks whose clock output carries the tempo.
// The scheduler calls SetTempo before the first tick and whenever the
// tempo changes.
type TempoSink interface {
	SetTempo(bpm int) error
}
