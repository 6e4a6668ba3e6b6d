// Package idx generates ULID identifiers. IDs are lexicographically
// sortable by creation time, which keeps newest-first index scans cheap.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a canonical 26-character ULID string.
type ID string

// Zero is the empty ID, for use as a placeholder only.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	genMu      sync.Mutex
	genEntropy *ulid.MonotonicEntropy
)

// New returns a fresh ID for the current UTC time. The shared monotonic
// entropy source keeps IDs minted within the same millisecond ordered.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt mints an ID for the given time. Useful in tests and for building
// time-bounded cursors.
func NewAt(t time.Time) ID {
	genMu.Lock()
	defer genMu.Unlock()

	if genEntropy == nil {
		genEntropy = ulid.Monotonic(rand.Reader, 0)
	}
	return ID(ulid.MustNew(ulid.Timestamp(t), genEntropy).String())
}

// Parse validates s as a canonical ULID and returns it as an ID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

// MustParse parses or panics. For hard-coded IDs in tests.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Time extracts the embedded UTC timestamp, or the zero time for invalid IDs.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
