package ecs

import (
	"testing"

	"github.com/illdynamics/qommandah-qeen/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
				if len(Entities(w)) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
				}
			}
		})
	}
}

func TestRecycledSlotRejectsStaleHandle(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got %v and %v", old, fresh)
	}
	if fresh == old {
		t.Fatalf("recycled handle must differ by generation")
	}
	if Has(w, fresh, kind) {
		t.Fatalf("components must not survive destruction")
	}
	if err := Add(w, old, kind, intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestComponentTable(t *testing.T) {
	w := NewWorld()

	hInt := component.NewComponent[int]()
	hStr := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, hInt.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, hInt.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				*v = 11
				v, _ = Get(w, e1, hInt.Kind())
				if *v != 11 {
					t.Fatalf("expected in-place mutation, got %d", *v)
				}
			},
			teardown: func() bool { return Remove(w, e1, hInt.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, hStr.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, hStr.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, hStr.Kind()) || !Has(w, e2, hStr.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
				if Has(w, e2, hInt.Kind()) {
					t.Fatalf("kinds must not leak between stores")
				}
			},
			teardown: func() bool { return Remove(w, e1, hStr.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)

	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
	if err := Add(w, e, component.NewComponentKind[int](), nil); err != component.ErrNilComponent {
		t.Fatalf("expected ErrNilComponent, got %v", err)
	}
}

func TestForEachOrderIsByID(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	ents := make([]Entity, 5)
	for i := range ents {
		ents[i] = CreateEntity(w)
	}
	// Insert out of order and punch a hole so the dense layout is shuffled.
	for _, i := range []int{4, 0, 3, 1, 2} {
		if err := Add(w, ents[i], kind, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}
	Remove(w, ents[0], kind)

	var got []int
	ForEach(w, kind, func(_ Entity, v *int) { got = append(got, *v) })
	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	first, ok := First(w, kind)
	if !ok || first != ents[1] {
		t.Fatalf("expected First to be %v, got %v ok=%v", ents[1], first, ok)
	}
}

func TestForEachAllowsRemoval(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, kind, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, kind, func(e Entity, _ *int) {
		visited++
		Remove(w, e, kind)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if _, ok := First(w, kind); ok {
		t.Fatalf("expected empty store")
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				for _, add := range []struct {
					e Entity
					k component.ComponentKind[int]
				}{{e1, ka}, {e2, ka}, {e2, kb}, {e2, kc}, {e3, kb}, {e3, kc}} {
					if err := Add(w, add.e, add.k, intPtr(1)); err != nil {
						t.Fatal(err)
					}
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				for _, k := range []component.ComponentKind[int]{ka, kb, kc} {
					if err := Add(w, e, k, intPtr(1)); err != nil {
						t.Fatal(err)
					}
				}
				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()
				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestSchedulerOrderAndEvents(t *testing.T) {
	w := NewWorld()
	var order []string
	s := NewScheduler(
		SystemFunc(func(w *World) {
			order = append(order, "a")
			w.Events().Push(Event{Kind: EventLanded})
		}),
		nil,
		SystemFunc(func(w *World) { order = append(order, "b") }),
	)

	s.Update(w)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected order %v", order)
	}
	if got := w.Events().Peek(); len(got) != 1 || got[0].Kind != EventLanded {
		t.Fatalf("expected landed event, got %v", got)
	}

	s.Update(w)
	if got := w.Events().Drain(); len(got) != 1 {
		t.Fatalf("events must reset each update, got %v", got)
	}
	if got := w.Events().Drain(); got != nil {
		t.Fatalf("drain must clear, got %v", got)
	}
}
