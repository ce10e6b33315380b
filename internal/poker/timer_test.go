package poker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func shortTick(t *testing.T) {
	t.Helper()
	old := timerTick
	timerTick = 5 * time.Millisecond
	t.Cleanup(func() { timerTick = old })
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestTimerCountsDownAndFinishesOnce(t *testing.T) {
	shortTick(t)
	leader := testParticipant("lead")
	c, _, emitter := newFixture(leader.ID)
	join(t, c, "r1", leader)

	require.NoError(t, c.StartTimer("r1", 2))
	require.Equal(t, 1, emitter.count(EventTimerStarted))

	waitFor(t, func() bool { return emitter.count(EventTimerFinished) > 0 })

	// после финиша тиков больше нет
	time.Sleep(5 * timerTick)
	require.Equal(t, 1, emitter.count(EventTimerFinished))
	require.Equal(t, 2, emitter.count(EventTimerUpdate))

	_, running := c.TimerRemaining("r1")
	require.False(t, running)
}

func TestStartTimerReplacesPrevious(t *testing.T) {
	shortTick(t)
	leader := testParticipant("lead")
	c, _, emitter := newFixture(leader.ID)
	join(t, c, "r1", leader)

	require.NoError(t, c.StartTimer("r1", 600))
	require.NoError(t, c.StartTimer("r1", 2))
	require.Equal(t, 2, emitter.count(EventTimerStarted))

	// побеждает второй таймер: первый не дотикал бы до финиша
	waitFor(t, func() bool { return emitter.count(EventTimerFinished) > 0 })
	require.Equal(t, 1, emitter.count(EventTimerFinished))
}

func TestStopTimerIsIdempotent(t *testing.T) {
	shortTick(t)
	leader := testParticipant("lead")
	c, _, emitter := newFixture(leader.ID)
	join(t, c, "r1", leader)

	require.NoError(t, c.StartTimer("r1", 600))
	require.NoError(t, c.StopTimer("r1"))
	require.NoError(t, c.StopTimer("r1"))

	// второе событие не шлется: таймера уже нет
	require.Equal(t, 1, emitter.count(EventTimerStopped))

	_, running := c.TimerRemaining("r1")
	require.False(t, running)

	time.Sleep(5 * timerTick)
	require.Equal(t, 0, emitter.count(EventTimerFinished))
}

func TestRequestTimerUpdate(t *testing.T) {
	leader := testParticipant("lead")
	c, _, _ := newFixture(leader.ID)
	caller := join(t, c, "r1", leader)

	// без таймера запрос молча игнорируется
	require.NoError(t, c.RequestTimerUpdate("r1", caller))
	require.False(t, caller.received(EventTimerUpdate))

	require.NoError(t, c.StartTimer("r1", 600))
	require.NoError(t, c.RequestTimerUpdate("r1", caller))
	require.True(t, caller.received(EventTimerUpdate))
}

func TestJoinSeesRunningTimer(t *testing.T) {
	leader := testParticipant("lead")
	second := testParticipant("dev")
	c, _, _ := newFixture(leader.ID)
	join(t, c, "r1", leader)

	require.NoError(t, c.StartTimer("r1", 600))

	late := join(t, c, "r1", second)
	require.True(t, late.received(EventTimerStarted))
}
