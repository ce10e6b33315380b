package poker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSweepReapsExpiredRoom(t *testing.T) {
	leader := testParticipant("lead")
	c, store, emitter := newFixture(leader.ID)
	join(t, c, "r1", leader)
	require.NoError(t, c.Leave("r1", leader.ID))

	room, _ := c.registry.Get("r1")
	room.mu.Lock()
	expired := time.Now().Add(-emptyGrace - time.Minute)
	room.emptySince = &expired
	room.mu.Unlock()

	NewReaper(c).Sweep()

	_, ok := c.registry.Get("r1")
	require.False(t, ok)
	require.Equal(t, []string{"r1"}, store.inactive)
	require.Equal(t, []string{"r1"}, emitter.closed)
}

func TestSweepKeepsOccupiedAndFreshRooms(t *testing.T) {
	leader := testParticipant("lead")
	second := testParticipant("dev")
	c, store, _ := newFixture(leader.ID)
	join(t, c, "occupied", leader)
	join(t, c, "fresh", second)
	require.NoError(t, c.Leave("fresh", second.ID))

	NewReaper(c).Sweep()

	_, ok := c.registry.Get("occupied")
	require.True(t, ok)
	_, ok = c.registry.Get("fresh")
	require.True(t, ok)
	require.Empty(t, store.inactive)
}

func TestRejoinClearsEmptyMark(t *testing.T) {
	leader := testParticipant("lead")
	c, _, _ := newFixture(leader.ID)
	join(t, c, "r1", leader)
	require.NoError(t, c.Leave("r1", leader.ID))

	room, _ := c.registry.Get("r1")
	room.mu.Lock()
	require.NotNil(t, room.emptySince)
	room.mu.Unlock()

	join(t, c, "r1", leader)

	room.mu.Lock()
	require.Nil(t, room.emptySince)
	room.mu.Unlock()

	// вернувшийся участник спасает комнату от зачистки
	NewReaper(c).Sweep()
	_, ok := c.registry.Get("r1")
	require.True(t, ok)
}

func TestTeardownSparesRevivedRoom(t *testing.T) {
	leader := testParticipant("lead")
	c, store, emitter := newFixture(leader.ID)
	join(t, c, "r1", leader)
	require.NoError(t, c.Leave("r1", leader.ID))

	room, _ := c.registry.Get("r1")
	room.mu.Lock()
	expired := time.Now().Add(-emptyGrace - time.Minute)
	room.emptySince = &expired
	room.mu.Unlock()

	// участник вернулся между проверкой рипера и зачисткой
	join(t, c, "r1", leader)
	c.teardown(room)

	_, ok := c.registry.Get("r1")
	require.True(t, ok)
	require.Empty(t, store.inactive)
	require.Empty(t, emitter.closed)
}

func TestReaperRunStops(t *testing.T) {
	oldInterval := reapInterval
	reapInterval = 5 * time.Millisecond
	t.Cleanup(func() { reapInterval = oldInterval })

	leader := testParticipant("lead")
	c, store, _ := newFixture(leader.ID)
	join(t, c, "r1", leader)
	require.NoError(t, c.Leave("r1", leader.ID))

	room, _ := c.registry.Get("r1")
	room.mu.Lock()
	expired := time.Now().Add(-emptyGrace - time.Minute)
	room.emptySince = &expired
	room.mu.Unlock()

	reaper := NewReaper(c)
	go reaper.Run()
	defer reaper.Stop()

	waitFor(t, func() bool {
		_, ok := c.registry.Get("r1")
		return !ok
	})

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Equal(t, []string{"r1"}, store.inactive)
}
