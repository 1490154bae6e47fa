package widget

import "github.com/doyosi/widgeta/model"

// Event names observable through On. Outcomes of a fetch cycle are reported
// exclusively through these events and the view-state, never as return
// values.
type Event string

const (
	EventStart      Event = "start"
	EventRendered   Event = "rendered"
	EventError      Event = "error"
	EventPageChange Event = "pageChange"
	EventSuccess    Event = "success"
	EventDeleted    Event = "deleted"
	EventLoaded     Event = "loaded"
	EventComplete   Event = "complete"
	EventChange     Event = "change"
	EventSwitched   Event = "switched"
)

// RenderedPayload accompanies EventRendered.
type RenderedPayload struct {
	Records []model.Record
	HTML    string
	Meta    *model.PageMeta
	Page    int
}

// ErrorPayload accompanies EventError.
type ErrorPayload struct {
	Err     error
	Message string
}

// PageChangePayload accompanies EventPageChange.
type PageChangePayload struct {
	Page  int
	Label string
}

// emitter keeps an ordered callback list per event name.
type emitter struct {
	handlers map[Event][]func(payload any)
}

// On registers a callback for the named event. Callbacks run synchronously
// in registration order.
func (e *emitter) On(event Event, fn func(payload any)) {
	if e.handlers == nil {
		e.handlers = make(map[Event][]func(payload any))
	}
	e.handlers[event] = append(e.handlers[event], fn)
}

func (e *emitter) emit(event Event, payload any) {
	for _, fn := range e.handlers[event] {
		fn(payload)
	}
}
