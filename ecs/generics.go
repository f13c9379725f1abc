package ecs

import "github.com/illdynamics/qommandah-qeen/ecs/component"

// Add attaches or replaces a component. Components are stored by pointer so
// systems mutate them in place.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind.ID(), true).Set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).Get(e.id()).(*T)
	return v, ok
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return IsAlive(w, e) && w.store(kind.ID(), false).Has(e.id())
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return w.store(kind.ID(), false).Remove(e.id())
}

// First returns the lowest-id entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	for _, id := range w.store(kind.ID(), false).sortedIDs() {
		if e, ok := w.entities.entityFor(id); ok {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits every entity with kind in ascending id order.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := w.store(kind.ID(), false)
	for _, id := range s.sortedIDs() {
		e, ok := w.entities.entityFor(id)
		if !ok {
			continue
		}
		if v, ok := s.Get(id).(*T); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sb := w.store(kb.ID(), false)
	if sb == nil {
		return
	}
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := sb.Get(e.id()).(*B); ok {
			fn(e, a, b)
		}
	})
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sc := w.store(kc.ID(), false)
	if sc == nil {
		return
	}
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := sc.Get(e.id()).(*C); ok {
			fn(e, a, b, c)
		}
	})
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	sd := w.store(kd.ID(), false)
	if sd == nil {
		return
	}
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		if d, ok := sd.Get(e.id()).(*D); ok {
			fn(e, a, b, c, d)
		}
	})
}
