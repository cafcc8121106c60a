package toast

import "time"

// Store is the ordered collection of active toast records.
//
// Store is not safe for concurrent use. A Toaster only touches its store
// from its event loop; standalone stores must be confined to one goroutine.
// NextID is the exception and may be called from anywhere.
type Store struct {
	position Position
	records  []Record
	ids      *idSource
	now      func() time.Time
}

// NewStore creates an empty store that orders records for position.
func NewStore(position Position) *Store {
	if !position.Valid() {
		position = DefaultPosition
	}
	return &Store{
		position: position,
		ids:      &idSource{},
		now:      time.Now,
	}
}

// Position returns the placement the store orders for.
func (s *Store) Position() Position {
	return s.position
}

// NextID allocates an id that no record of this store has used.
func (s *Store) NextID() ID {
	return s.ids.next()
}

// Enqueue adds a visible record built from opts and returns its id.
func (s *Store) Enqueue(opts Options) ID {
	id := s.NextID()
	s.insert(Record{
		ID:        id,
		Visible:   true,
		Render:    opts.Render,
		CreatedAt: s.now(),
	})
	return id
}

// insert places r at the front for top positions, at the back otherwise.
func (s *Store) insert(r Record) {
	if s.position.IsTop() {
		s.records = append(s.records, Record{})
		copy(s.records[1:], s.records)
		s.records[0] = r
		return
	}
	s.records = append(s.records, r)
}

// SetVisible updates the visibility of the record with the given id and
// reports whether anything changed. Unknown ids are ignored, and a hidden
// record never becomes visible again.
func (s *Store) SetVisible(id ID, visible bool) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if visible || !s.records[i].Visible {
		return false
	}
	s.records[i].Visible = false
	return true
}

// Remove drops the record with the given id and reports whether it existed.
func (s *Store) Remove(id ID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return true
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id ID) (Record, bool) {
	i := s.index(id)
	if i < 0 {
		return Record{}, false
	}
	return s.records[i], true
}

// Records returns a copy of the records in display order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

func (s *Store) index(id ID) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}
