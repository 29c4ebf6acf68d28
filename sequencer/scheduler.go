package sequencer

import (
	"context"
	"time"

	"padseq/debug"
)

// Scheduler runs the tick loop. It owns the Context exclusively; input
// reaches it only through the Inbox.
type Scheduler struct {
	ctx   Context
	inbox *Inbox
	sink  Sink

	// Monitor receives the latest Snapshot after every tick. Sends never
	// block; a full channel has its stale snapshot replaced.
	monitor chan Snapshot

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

// NewScheduler starts from initial. A nil sink discards output.
func NewScheduler(initial Context, inbox *Inbox, sink Sink) *Scheduler {
	if sink == nil {
		sink = Discard{}
	}
	if inbox == nil {
		inbox = NewInbox()
	}
	return &Scheduler{
		ctx:   initial,
		inbox: inbox,
		sink:  sink,
		now:   time.Now,
		sleep: sleepContext,
	}
}

// Monitor returns a channel of snapshots, creating it on first use. Call
// before Run.
func (s *Scheduler) Monitor() <-chan Snapshot {
	if s.monitor == nil {
		s.monitor = make(chan Snapshot, 1)
	}
	return s.monitor
}

// Context is the current state. Only safe to call from the goroutine
// running the scheduler, or when it is stopped.
func (s *Scheduler) Context() Context {
	return s.ctx
}

// Run lights the initial state, then ticks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	debug.Info("sched", "starting", "bpm", s.ctx.BPM, "mode", s.ctx.Mode)
	s.sendTempo(s.ctx.BPM)
	s.sendLights(DiffLights(nil, Lights(s.ctx)))
	s.publish()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.sleep(ctx, s.tick()); err != nil {
			return err
		}
	}
}

// tick runs one iteration and returns how long to sleep before the next:
// emit events and clock for the current tick, drain input, fold it into
// the next Context, send the light diff, then subtract the time spent from
// the tick period. Overruns are not caught up.
func (s *Scheduler) tick() time.Duration {
	start := s.now()
	prev := s.ctx

	for _, e := range prev.Events() {
		if err := s.sink.Trigger(e); err != nil {
			debug.Error("sched", "trigger failed", "note", e.Note, "err", err)
		}
	}
	if err := s.sink.Clock(); err != nil {
		debug.LogEvery(TicksPerBar, "sched", "clock failed", "err", err)
	}

	msgs := s.inbox.Drain()
	for _, m := range msgs {
		debug.Log("input", "message", "msg", m, "tick", prev.Tick)
	}
	next := prev.ProcessMessages(msgs).AdvanceTick()
	if next.Mode != prev.Mode {
		debug.Log("mode", "changed", "from", prev.Mode, "to", next.Mode)
	}
	if next.BPM != prev.BPM {
		s.sendTempo(next.BPM)
	}

	s.sendLights(Diff(prev, next))
	s.ctx = next
	s.publish()

	period := TickDuration(next.BPM)
	elapsed := s.now().Sub(start)
	if elapsed >= period {
		debug.LogEvery(TicksPerBar, "sched", "tick overran", "elapsed", elapsed, "period", period)
		return 0
	}
	return period - elapsed
}

func (s *Scheduler) sendLights(cmds []LightCommand) {
	for _, cmd := range cmds {
		if err := s.sink.Light(cmd); err != nil {
			debug.Error("led", "light failed", "light", cmd.Light, "on", cmd.On, "err", err)
		}
	}
}

func (s *Scheduler) sendTempo(bpm int) {
	t, ok := s.sink.(TempoSink)
	if !ok {
		return
	}
	if err := t.SetTempo(bpm); err != nil {
		debug.Error("sched", "tempo failed", "bpm", bpm, "err", err)
	}
}

func (s *Scheduler) publish() {
	if s.monitor == nil {
		return
	}
	snap := NewSnapshot(s.ctx)
	select {
	case s.monitor <- snap:
		return
	default:
	}
	// drop the stale one and retry once
	select {
	case <-s.monitor:
	default:
	}
	select {
	case s.monitor <- snap:
	default:
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
