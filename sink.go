package quorum

import (
	"encoding/hex"

	"github.com/rs/zerolog"
)

// Sink consumes emitted events. Implementations must not call back into
// the component that published the event.
type Sink interface {
	Publish(Event)
}

// NopSink drops every event. It is the default sink when none is
// configured.
type NopSink struct{}

var _ Sink = NopSink{}

func (NopSink) Publish(Event) {}

// MultiSink fans every event out to all member sinks in order.
type MultiSink []Sink

var _ Sink = MultiSink(nil)

func (s MultiSink) Publish(ev Event) {
	for _, sub := range s {
		sub.Publish(ev)
	}
}

// LogSink publishes events as structured log lines.
type LogSink struct {
	logger zerolog.Logger
}

var _ Sink = LogSink{}

// NewLogSink returns a sink writing one log line per event through the
// given logger.
func NewLogSink(logger zerolog.Logger) LogSink {
	return LogSink{logger: logger}
}

func (s LogSink) Publish(ev Event) {
	line := s.logger.Info().
		Str("event", ev.Kind()).
		Str("event_id", ev.EventID())

	switch ev := ev.(type) {
	case Submitted:
		line = line.
			Stringer("caller", ev.Caller).
			Uint64("index", ev.Index).
			Stringer("target", ev.Target).
			Int64("amount", int64(ev.Amount))
		if len(ev.Payload) != 0 {
			line = line.Str("payload", hex.EncodeToString(ev.Payload))
		}
	case Confirmed:
		line = line.Stringer("caller", ev.Caller).Uint64("index", ev.Index)
	case Revoked:
		line = line.Stringer("caller", ev.Caller).Uint64("index", ev.Index)
	case Executed:
		line = line.Stringer("caller", ev.Caller).Uint64("index", ev.Index)
	case Deposited:
		line = line.
			Stringer("sender", ev.Sender).
			Int64("amount", int64(ev.Amount)).
			Int64("balance", int64(ev.Balance))
	}

	line.Send()
}
