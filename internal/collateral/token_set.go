package collateral

import (
	"nftpool/core"
)

// TokenSet ordered set of unique token ids
//
// Insertion, removal and membership are O(1); removal swaps the last id into
// the freed slot, so iteration order is insertion order until the first
// removal.
type TokenSet struct {
	ids   []core.TokenID
	index map[core.TokenID]int
}

// NewTokenSet new token set, repeated ids are kept once
func NewTokenSet(ids ...core.TokenID) *TokenSet {
	s := &TokenSet{
		ids:   make([]core.TokenID, 0, len(ids)),
		index: make(map[core.TokenID]int, len(ids)),
	}

	for _, id := range ids {
		s.Add(id)
	}

	return s
}

// Len number of ids
func (s *TokenSet) Len() int {
	return len(s.ids)
}

// Has membership test
func (s *TokenSet) Has(id core.TokenID) bool {
	_, ok := s.index[id]
	return ok
}

// Add returns false if id is already present
func (s *TokenSet) Add(id core.TokenID) bool {
	if s.Has(id) {
		return false
	}

	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

// Remove returns false if id is not present
func (s *TokenSet) Remove(id core.TokenID) bool {
	idx, ok := s.index[id]
	if !ok {
		return false
	}

	last := len(s.ids) - 1
	if idx != last {
		moved := s.ids[last]
		s.ids[idx] = moved
		s.index[moved] = idx
	}

	s.ids = s.ids[:last]
	delete(s.index, id)
	return true
}

// Values copy of the ids
func (s *TokenSet) Values() []core.TokenID {
	values := make([]core.TokenID, len(s.ids))
	copy(values, s.ids)
	return values
}
