package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStarted(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New()
	require.NoError(t, err)
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func TestScheduleReplacesPreviousJob(t *testing.T) {
	s := newStarted(t)
	far := time.Now().Add(time.Hour)

	first, err := s.Schedule(1, far, func() {})
	require.NoError(t, err)

	second, err := s.Schedule(1, far.Add(time.Hour), func() {})
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, s.Pending(1))
	assert.Len(t, s.inner.Jobs(), 1)
}

func TestCancelClearsPending(t *testing.T) {
	s := newStarted(t)

	_, err := s.Schedule(7, time.Now().Add(time.Hour), func() {})
	require.NoError(t, err)
	require.True(t, s.Pending(7))

	s.Cancel(7)
	assert.False(t, s.Pending(7))
	assert.Empty(t, s.inner.Jobs())

	// cancelling again is a no-op
	s.Cancel(7)
}

func TestOwnersAreIndependent(t *testing.T) {
	s := newStarted(t)
	far := time.Now().Add(time.Hour)

	_, err := s.Schedule(1, far, func() {})
	require.NoError(t, err)
	_, err = s.Schedule(2, far, func() {})
	require.NoError(t, err)

	s.Cancel(1)
	assert.False(t, s.Pending(1))
	assert.True(t, s.Pending(2))
}

func TestFiredJobIsForgotten(t *testing.T) {
	s := newStarted(t)

	done := make(chan struct{})
	_, err := s.Schedule(3, time.Now().Add(50*time.Millisecond), func() {
		close(done)
	})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not fire")
	}

	assert.Eventually(t, func() bool { return !s.Pending(3) },
		time.Second, 10*time.Millisecond)
}
