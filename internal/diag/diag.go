// Package diag is the explicit diagnostics channel of the grouping engine.
//
// Engine stages do not log. Instead every stage returns the events it wants
// a human to see next to its result, which keeps the stages pure functions
// of their input. The driver replays the collected events into the
// application logger (see ctxlog.Replay).
package diag

import "fmt"

// Level is the severity of an Event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Event is a single structured diagnostic.
type Event struct {
	Stage   string
	Level   Level
	Message string
	// Attrs are alternating key/value pairs, in the style of slog.
	Attrs []any
}

// Events accumulates diagnostics for one stage.
type Events struct {
	stage  string
	events []Event
}

// For returns an empty collector tagged with stage.
func For(stage string) *Events {
	return &Events{stage: stage}
}

func (e *Events) add(level Level, msg string, attrs []any) {
	e.events = append(e.events, Event{Stage: e.stage, Level: level, Message: msg, Attrs: attrs})
}

func (e *Events) Debug(msg string, attrs ...any) { e.add(LevelDebug, msg, attrs) }
func (e *Events) Info(msg string, attrs ...any)  { e.add(LevelInfo, msg, attrs) }
func (e *Events) Warn(msg string, attrs ...any)  { e.add(LevelWarn, msg, attrs) }

// Append adds already-built events, keeping their stage.
func (e *Events) Append(events ...Event) {
	e.events = append(e.events, events...)
}

// List returns the collected events.
func (e *Events) List() []Event {
	return e.events
}

// Count returns how many events of each level are in events.
func Count(events []Event) map[Level]int {
	counts := make(map[Level]int, 3)
	for _, ev := range events {
		counts[ev.Level]++
	}
	return counts
}

// Filter returns the events at or above min.
func Filter(events []Event, min Level) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Level >= min {
			out = append(out, ev)
		}
	}
	return out
}
