package poker

import "time"

// Интервал тика; в тестах укорачивается
var timerTick = time.Second

// StartTimer запускает обратный отсчет для комнаты.
// Повторный запуск молча гасит предыдущий таймер.
func (c *Controller) StartTimer(roomID string, duration int) error {
	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	room.stopTimerLocked()
	t := &roomTimer{timeLeft: duration, stop: make(chan struct{})}
	room.timer = t
	c.emitter.ToRoom(roomID, EventTimerStarted, TimerStartedEvent{Duration: duration})
	room.mu.Unlock()

	go c.runTimer(room, t)
	return nil
}

// StopTimer останавливает таймер, если он запущен
func (c *Controller) StopTimer(roomID string) error {
	room, ok := c.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	stopped := room.stopTimerLocked()
	if stopped {
		c.emitter.ToRoom(roomID, EventTimerStopped, Notice{Value: "Timer stopped."})
	}
	room.mu.Unlock()
	return nil
}

// TimerRemaining возвращает остаток секунд, если таймер запущен
func (c *Controller) TimerRemaining(roomID string) (int, bool) {
	room, ok := c.registry.Get(roomID)
	if !ok {
		return 0, false
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.timer == nil {
		return 0, false
	}
	return room.timer.timeLeft, true
}

// RequestTimerUpdate шлет вызывающему текущий остаток
func (c *Controller) RequestTimerUpdate(roomID string, caller Caller) error {
	if left, ok := c.TimerRemaining(roomID); ok {
		caller.Emit(EventTimerUpdate, TimerUpdateEvent{TimeLeft: left})
	}
	return nil
}

func (c *Controller) runTimer(room *Room, t *roomTimer) {
	ticker := time.NewTicker(timerTick)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return

		case <-ticker.C:
			room.mu.Lock()
			if room.timer != t {
				// таймер перезапущен или остановлен: тик в полете не оживляет его
				room.mu.Unlock()
				return
			}
			if t.timeLeft <= 0 {
				room.timer = nil
				c.emitter.ToRoom(room.ID, EventTimerFinished, nil)
				room.mu.Unlock()
				return
			}
			t.timeLeft--
			c.emitter.ToRoom(room.ID, EventTimerUpdate, TimerUpdateEvent{TimeLeft: t.timeLeft})
			room.mu.Unlock()
		}
	}
}
