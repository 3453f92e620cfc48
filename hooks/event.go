// Package hooks implements the notification and stop hook entry points:
// each reads one JSON event from stdin, appends it to an event log and
// optionally announces it via speech. Hooks never fail their caller; a
// malformed event or a broken backend ends in a clean no-op.
package hooks

import (
	"encoding/json"
	"errors"
	"io"
)

// ErrMalformedInput indicates the event payload on stdin was not valid
// JSON. Hook entry points treat this as a non-fatal, log-nothing outcome.
var ErrMalformedInput = errors.New("malformed event payload")

// Event is one JSON event object as delivered by the agent runtime. Fields
// beyond the ones accessed here are carried through to the log untouched.
type Event map[string]any

// ParseEvent decodes a single event object from r.
func ParseEvent(r io.Reader) (Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrMalformedInput
	}
	var e Event
	if err := json.Unmarshal(data, &e); err != nil || e == nil {
		return nil, ErrMalformedInput
	}
	return e, nil
}

// Message returns the event's free-form message field.
func (e Event) Message() string {
	s, _ := e["message"].(string)
	return s
}

// SessionID returns the session identifier echoed by the event source.
func (e Event) SessionID() string {
	s, _ := e["session_id"].(string)
	return s
}

// TranscriptPath returns the transcript file path, when present.
func (e Event) TranscriptPath() string {
	s, _ := e["transcript_path"].(string)
	return s
}

// StopHookActive reports the stop_hook_active flag echoed by the event
// source.
func (e Event) StopHookActive() bool {
	b, _ := e["stop_hook_active"].(bool)
	return b
}
