package toast

import (
	"strconv"
	"sync/atomic"
)

// ID identifies a toast within its Toaster.
// IDs increase strictly, so they never repeat within a provider.
type ID uint64

// String returns the decimal form of the id.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses the decimal form produced by ID.String.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return ID(n), nil
}

// idSource hands out ids. It is safe for concurrent use.
type idSource struct {
	last atomic.Uint64
}

func (s *idSource) next() ID {
	return ID(s.last.Add(1))
}
