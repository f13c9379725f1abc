package modehook

import (
	"errors"
	"fmt"
	"io"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
)

var (
	ErrDuplicateHook = errors.New("modehook: duplicate hook id")
	ErrUnknownHook   = errors.New("modehook: unknown hook id")
)

// Change records one activation flip applied by Commit.
type Change struct {
	ID     string
	Active bool
}

type request struct {
	id     string
	toggle bool
	active bool
}

// Registry owns the hook set for the current level. Hooks keep their
// registration order, which breaks priority ties. Activation requests are
// queued and only take effect at Commit.
type Registry struct {
	hooks   *orderedmap.OrderedMap[string, *Hook]
	pending []request
	log     *logrus.Logger
}

func NewRegistry(log *logrus.Logger) *Registry {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Registry{
		hooks: orderedmap.NewOrderedMap[string, *Hook](),
		log:   log,
	}
}

// Register adds a hook. Its Active field is taken as the initial state.
func (r *Registry) Register(h Hook) error {
	if err := h.Validate(); err != nil {
		return err
	}
	if _, ok := r.hooks.Get(h.ID); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHook, h.ID)
	}
	hook := h
	r.hooks.Set(h.ID, &hook)
	return nil
}

// Load replaces the whole hook set, dropping queued requests. It is called
// between levels.
func (r *Registry) Load(hooks []Hook) error {
	r.Clear()
	for _, h := range hooks {
		if err := r.Register(h); err != nil {
			r.Clear()
			return fmt.Errorf("modehook: load: %w", err)
		}
	}
	r.log.WithField("hooks", r.hooks.Len()).Debug("mode hooks loaded")
	return nil
}

func (r *Registry) Clear() {
	r.hooks = orderedmap.NewOrderedMap[string, *Hook]()
	r.pending = nil
}

func (r *Registry) Activate(id string) error {
	return r.queue(request{id: id, active: true})
}

func (r *Registry) Deactivate(id string) error {
	return r.queue(request{id: id})
}

// Toggle flips whatever state the hook is in when the request is applied.
func (r *Registry) Toggle(id string) error {
	return r.queue(request{id: id, toggle: true})
}

func (r *Registry) queue(req request) error {
	if _, ok := r.hooks.Get(req.id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHook, req.id)
	}
	r.pending = append(r.pending, req)
	return nil
}

// Pending reports whether any requests wait for the next Commit.
func (r *Registry) Pending() bool {
	return len(r.pending) > 0
}

// Commit applies queued requests in arrival order and returns the hooks whose
// state actually changed.
func (r *Registry) Commit() []Change {
	if len(r.pending) == 0 {
		return nil
	}
	before := make(map[string]bool, len(r.pending))
	for _, req := range r.pending {
		h, ok := r.hooks.Get(req.id)
		if !ok {
			continue
		}
		if _, seen := before[req.id]; !seen {
			before[req.id] = h.Active
		}
		if req.toggle {
			h.Active = !h.Active
		} else {
			h.Active = req.active
		}
	}

	var changes []Change
	for el := r.hooks.Front(); el != nil; el = el.Next() {
		was, touched := before[el.Key]
		if !touched || was == el.Value.Active {
			continue
		}
		changes = append(changes, Change{ID: el.Key, Active: el.Value.Active})
		r.log.WithFields(logrus.Fields{"hook": el.Key, "active": el.Value.Active}).Debug("mode hook changed")
	}
	r.pending = nil
	return changes
}

// Get returns a copy of the committed hook.
func (r *Registry) Get(id string) (Hook, bool) {
	h, ok := r.hooks.Get(id)
	if !ok {
		return Hook{}, false
	}
	return *h, true
}

// Hooks returns copies of all hooks in registration order.
func (r *Registry) Hooks() []Hook {
	out := make([]Hook, 0, r.hooks.Len())
	for el := r.hooks.Front(); el != nil; el = el.Next() {
		out = append(out, *el.Value)
	}
	return out
}
