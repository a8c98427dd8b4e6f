package gxwebserial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteQueueOrder(t *testing.T) {
	q := newWriteQueue()
	q.put([]byte("A"))
	q.put([]byte("B"))
	q.put([]byte("C"))
	for _, want := range []string{"A", "B", "C"} {
		chunk, ok := q.take()
		require.True(t, ok)
		require.Equal(t, want, string(chunk))
	}
}

func TestWriteQueueCloseUnblocksTake(t *testing.T) {
	q := newWriteQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.take()
		done <- ok
	}()
	time.Sleep(50 * time.Millisecond)
	q.close()
	select {
	case ok := <-done:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("take did not return after close")
	}

	// Idempotent; put after close is dropped.
	q.close()
	q.put([]byte("late"))
	_, ok := q.take()
	require.False(t, ok)
}

func TestSynchronousMediaBaseSearch(t *testing.T) {
	s := newGXSynchronousMediaBase()

	go func() {
		time.Sleep(20 * time.Millisecond)
		s.Append([]byte("pi"))
		time.Sleep(20 * time.Millisecond)
		s.Append([]byte("ng\nrest"))
	}()
	index := s.Search([]byte("\n"), 0, time.Second)
	require.Equal(t, 5, index)
	require.Equal(t, "ping\n", string(s.Get(index)))
	require.Equal(t, 4, s.Size())

	// Count based wait on the remaining bytes.
	index = s.Search(nil, 4, time.Second)
	require.Equal(t, 4, index)
	require.Equal(t, "rest", string(s.Get(-1)))

	// Timeout path.
	index = s.Search([]byte("\n"), 0, 50*time.Millisecond)
	require.Equal(t, -1, index)

	s.Append([]byte("data"))
	s.Reset()
	require.Zero(t, s.Size())
}
