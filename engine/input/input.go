package input

import (
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-triangle/common"
)

// Direction is whether a key went down or up.
type Direction int

const (
	Down Direction = iota
	Up
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Event is one key transition as delivered to a Sink.
type Event struct {
	Direction Direction
	Code      uint32
}

// Sink receives key events.
type Sink interface {
	Notify(e Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(e Event)

func (f SinkFunc) Notify(e Event) {
	f(e)
}

// Notifier translates host key callbacks into events. Both methods report the event as consumed,
// which tells the host to suppress its default handling.
type Notifier interface {
	// KeyDown forwards a key press.
	//
	// Parameters:
	//   - code: the host key code
	//
	// Returns:
	//   - bool: always true
	KeyDown(code uint32) bool

	// KeyUp forwards a key release.
	//
	// Parameters:
	//   - code: the host key code
	//
	// Returns:
	//   - bool: always true
	KeyUp(code uint32) bool
}

type notifier struct {
	sink Sink
}

var _ Notifier = &notifier{}

// NewNotifier creates a Notifier that forwards to sink. A nil sink discards events.
func NewNotifier(sink Sink) Notifier {
	if sink == nil {
		sink = SinkFunc(func(Event) {})
	}
	return &notifier{sink: sink}
}

func (n *notifier) KeyDown(code uint32) bool {
	n.sink.Notify(Event{Direction: Down, Code: code})
	return true
}

func (n *notifier) KeyUp(code uint32) bool {
	n.sink.Notify(Event{Direction: Up, Code: code})
	return true
}

// LogSink writes one structured log entry per event.
type LogSink struct {
	logger *slog.Logger
}

var _ Sink = &LogSink{}

// NewLogSink creates a LogSink. A nil logger uses slog.Default.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(e Event) {
	s.logger.Info("key event", "direction", e.Direction.String(), "code", e.Code, "key", common.KeyName(e.Code))
}
