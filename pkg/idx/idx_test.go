package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewIsOrderedWithinMillisecond(t *testing.T) {
	at := time.Now().UTC()

	prev := NewAt(at)
	for i := 0; i < 100; i++ {
		next := NewAt(at)
		require.Less(t, prev.String(), next.String())
		prev = next
	}
}

func TestParse(t *testing.T) {
	id := New()

	parsed, err := Parse("  " + id.String() + "  ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	for _, bad := range []string{"", "not-a-ulid", "01ARZ3NDEKTSV4RRFFQ69G5FA"} {
		_, err := Parse(bad)
		require.ErrorIs(t, err, ErrInvalid, "input=%q", bad)
	}
}

func TestTimeRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := NewAt(at)

	// ULID timestamps have millisecond precision.
	require.WithinDuration(t, at, id.Time(), time.Millisecond)
	require.True(t, Zero.Time().IsZero())
}

func TestIsZero(t *testing.T) {
	require.True(t, Zero.IsZero())
	require.False(t, New().IsZero())
}
