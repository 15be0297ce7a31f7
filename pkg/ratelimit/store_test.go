package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStore_Allow(t *testing.T) {
	s := NewStore(1, 2, time.Minute, 0)
	defer s.Close()

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.True(t, s.Allow("1.1.1.1"))
	require.True(t, s.Allow("1.1.1.1"))
	require.False(t, s.Allow("1.1.1.1"))

	// Other keys have their own bucket.
	require.True(t, s.Allow("2.2.2.2"))

	now = now.Add(time.Second)
	require.True(t, s.Allow("1.1.1.1"))
	require.False(t, s.Allow("1.1.1.1"))
}

func TestStore_Cleanup(t *testing.T) {
	s := NewStore(1, 1, time.Minute, 0)
	defer s.Close()

	now := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Allow("a")
	now = now.Add(30 * time.Second)
	s.Allow("b")
	require.Equal(t, 2, s.Len())

	now = now.Add(45 * time.Second)
	s.Cleanup()
	require.Equal(t, 1, s.Len())

	now = now.Add(2 * time.Minute)
	s.Cleanup()
	require.Equal(t, 0, s.Len())
}

func TestStore_CloseTwice(t *testing.T) {
	s := NewStore(1, 1, time.Minute, time.Millisecond)
	s.Close()
	s.Close()
}
