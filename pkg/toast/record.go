package toast

import (
	"time"

	"github.com/vango-dev/crispy/pkg/vdom"
)

// RenderFunc produces the content of a toast from a snapshot of its record.
// It is called by the presentation layer every time the container is
// rendered, so it should be a pure function of the record.
type RenderFunc func(r Record) *vdom.VNode

// Options describes a toast to show.
type Options struct {
	// Render produces the toast content.
	Render RenderFunc

	// Duration overrides the provider's display duration for this toast.
	// Zero uses the provider default. MinDuration applies either way.
	Duration time.Duration
}

// Record is a single toast as held by the store.
// Records are handed out by value; mutating a copy has no effect.
type Record struct {
	ID        ID
	Visible   bool
	Render    RenderFunc
	CreatedAt time.Time
}

// Content calls the record's render function.
// A record without a render function renders nothing.
func (r Record) Content() *vdom.VNode {
	if r.Render == nil {
		return nil
	}
	return r.Render(r)
}

// Snapshot is an immutable view of a Toaster's records.
type Snapshot struct {
	Position Position
	Records  []Record

	// Version increases with every published change.
	Version uint64
}

// Len returns the number of records.
func (s Snapshot) Len() int {
	return len(s.Records)
}

// IDs returns the record ids in display order.
func (s Snapshot) IDs() []ID {
	ids := make([]ID, len(s.Records))
	for i, r := range s.Records {
		ids[i] = r.ID
	}
	return ids
}

// Get returns the record with the given id.
func (s Snapshot) Get(id ID) (Record, bool) {
	for _, r := range s.Records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
