package ecs

import "slices"

// SparseSet stores one component kind keyed by entity slot id. Values are
// kept densely for iteration and addressed through the sparse index.
type SparseSet struct {
	denseEntities []entityID
	denseValues   []any
	sparse        []int
}

func (s *SparseSet) Has(id entityID) bool {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == id
}

// Get returns the component for id, or nil.
func (s *SparseSet) Get(id entityID) any {
	if !s.Has(id) {
		return nil
	}
	return s.denseValues[s.sparse[id-1]]
}

// Set inserts or replaces the component for id.
func (s *SparseSet) Set(id entityID, v any) {
	if s == nil || id == 0 {
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(id) {
		s.denseValues[s.sparse[id-1]] = v
		return
	}
	s.denseEntities = append(s.denseEntities, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

// Remove swaps the last dense entry into the removed slot.
func (s *SparseSet) Remove(id entityID) bool {
	if !s.Has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.denseEntities) - 1
	lastID := s.denseEntities[last]

	s.denseEntities[idx] = lastID
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues[last] = nil
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// sortedIDs copies the member ids in ascending order. Iterating over the copy
// keeps traversal order independent of insert/remove history and lets
// callbacks mutate the set.
func (s *SparseSet) sortedIDs() []entityID {
	if s == nil || len(s.denseEntities) == 0 {
		return nil
	}
	ids := slices.Clone(s.denseEntities)
	slices.Sort(ids)
	return ids
}
