package entity

// Store owns every entity of a session in registration order. Queries return
// entities in that order, which is also the draw order.
type Store struct {
	entities []*Entity
	nextID   ID
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add assigns the entity an ID and registers it after every existing entity
func (s *Store) Add(e *Entity) *Entity {
	e.ID = s.nextID
	s.nextID++
	s.entities = append(s.entities, e)
	return e
}

// Get returns the entity with the given ID, or nil
func (s *Store) Get(id ID) *Entity {
	for _, e := range s.entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Query returns every entity holding all flags in caps, in registration order
func (s *Store) Query(caps Capability) []*Entity {
	var out []*Entity
	for _, e := range s.entities {
		if e.Caps.Has(caps) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entities hold all flags in caps
func (s *Store) Count(caps Capability) int {
	n := 0
	for _, e := range s.entities {
		if e.Caps.Has(caps) {
			n++
		}
	}
	return n
}

// Len returns the number of stored entities, destroyed ones included until
// the next Compact
func (s *Store) Len() int {
	return len(s.entities)
}

// Compact drops destroyed entities, keeping the order of the rest
func (s *Store) Compact() int {
	kept := s.entities[:0]
	for _, e := range s.entities {
		if e.Active() {
			kept = append(kept, e)
		}
	}
	removed := len(s.entities) - len(kept)
	for i := len(kept); i < len(s.entities); i++ {
		s.entities[i] = nil
	}
	s.entities = kept
	return removed
}

// Clear removes every entity
func (s *Store) Clear() {
	for _, e := range s.entities {
		e.Destroy()
	}
	s.entities = nil
}
