package writequeue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SerializesPerKey(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	var (
		mu      sync.Mutex
		active  int
		overlap bool
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Execute(context.Background(), "fuel_entry", func() error {
				mu.Lock()
				active++
				if active > 1 {
					overlap = true
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.False(t, overlap)
	assert.Equal(t, 1, m.QueueCount())
}

func TestManager_ReturnsResultAndRecoversPanic(t *testing.T) {
	m := New(nil, nil)
	defer m.Shutdown(context.Background())

	assert.EqualError(t, m.Execute(context.Background(), "a", func() error { return assert.AnError }), assert.AnError.Error())
	assert.Error(t, m.Execute(context.Background(), "a", func() error { panic("boom") }))
	assert.NoError(t, m.Execute(context.Background(), "a", func() error { return nil }))
}

func TestManager_Timeout(t *testing.T) {
	m := New(&Config{WriteTimeout: 10 * time.Millisecond}, nil)
	release := make(chan struct{})
	defer func() {
		close(release)
		m.Shutdown(context.Background())
	}()

	err := m.Execute(context.Background(), "slow", func() error {
		<-release
		return nil
	})
	assert.ErrorIs(t, err, ErrWriteTimeout)
}

func TestManager_Shutdown(t *testing.T) {
	m := New(nil, nil)
	require.NoError(t, m.Execute(context.Background(), "a", func() error { return nil }))
	require.NoError(t, m.Shutdown(context.Background()))
	require.NoError(t, m.Shutdown(context.Background()))

	assert.ErrorIs(t, m.Execute(context.Background(), "a", func() error { return nil }), ErrWriteQueueClosed)
}
