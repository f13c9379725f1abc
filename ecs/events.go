package ecs

// EventKind identifies what an Event carries.
type EventKind string

const (
	EventLanded   EventKind = "landed"
	EventShot     EventKind = "shot"
	EventModeLost EventKind = "mode_lost"
	EventHurt     EventKind = "hurt"
	EventPickup   EventKind = "pickup"
)

// Event is a one-tick notification raised by a system.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a FIFO of events raised during the current tick.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
