package configurator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_SoleRequestWins(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	assert.True(t, d.Wait(context.Background()))
}

func TestDebouncer_SupersededRequestLoses(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var wg sync.WaitGroup
	wg.Add(1)
	var firstWon bool
	go func() {
		defer wg.Done()
		firstWon = d.Wait(context.Background())
	}()

	// A second keystroke arrives while the first is still settling.
	time.Sleep(10 * time.Millisecond)
	secondWon := d.Wait(context.Background())
	wg.Wait()

	assert.False(t, firstWon)
	assert.True(t, secondWon)
}

func TestDebouncer_ContextCancellation(t *testing.T) {
	d := NewDebouncer(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, d.Wait(ctx))
}

func TestDebouncer_CurrentTracksLatestToken(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	require.True(t, d.Wait(context.Background()))
	token := d.Token()
	assert.True(t, d.Current(token))

	// A newer request makes the captured token stale.
	_ = d.Wait(context.Background())
	assert.False(t, d.Current(token))
}

func TestManager_SessionLifecycle(t *testing.T) {
	m := NewManager()
	id, store := m.NewSession("KP4")
	require.NotEmpty(t, id)
	require.NotNil(t, store)

	got, err := m.Get(id)
	require.NoError(t, err)
	assert.Same(t, store, got)

	search, err := m.Search(id)
	require.NoError(t, err)
	assert.NotNil(t, search)

	m.Delete(id)
	_, err = m.Get(id)
	assert.ErrorIs(t, err, ErrSessionGone)
}

func TestManager_SessionIDsAreUnique(t *testing.T) {
	m := NewManager()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, _ := m.NewSession("KP4")
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestManager_SweepDropsIdleSessions(t *testing.T) {
	m := NewManager()
	idle, _ := m.NewSession("KP4")
	active, _ := m.NewSession("KP6")

	time.Sleep(20 * time.Millisecond)
	_, err := m.Get(active) // refresh lastSeen
	require.NoError(t, err)

	dropped := m.Sweep(10 * time.Millisecond)
	assert.Equal(t, 1, dropped)

	_, err = m.Get(idle)
	assert.ErrorIs(t, err, ErrSessionGone)
	_, err = m.Get(active)
	assert.NoError(t, err)
}
