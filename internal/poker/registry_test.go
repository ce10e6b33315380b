package poker

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetOrCreateReturnsSameRoom(t *testing.T) {
	registry := NewRegistry()

	first := registry.GetOrCreate("r1")
	second := registry.GetOrCreate("r1")
	require.Same(t, first, second)
	require.Equal(t, 1, registry.Len())
}

func TestConcurrentGetOrCreate(t *testing.T) {
	registry := NewRegistry()

	const workers = 32
	rooms := make([]*Room, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			rooms[i] = registry.GetOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		require.Same(t, rooms[0], rooms[i])
	}
	require.Equal(t, 1, registry.Len())
}

func TestRemoveAndSnapshot(t *testing.T) {
	registry := NewRegistry()
	for i := 0; i < 3; i++ {
		registry.GetOrCreate(fmt.Sprintf("r%d", i))
	}
	require.Len(t, registry.Snapshot(), 3)

	registry.Remove("r1")
	require.Equal(t, 2, registry.Len())
	_, ok := registry.Get("r1")
	require.False(t, ok)

	// удаление неизвестной комнаты — no-op
	registry.Remove("ghost")
	require.Equal(t, 2, registry.Len())
}
