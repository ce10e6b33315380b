package poker

import "time"

// Параметры зачистки; в тестах укорачиваются
var (
	reapInterval = time.Minute
	emptyGrace   = 2 * time.Minute
)

// Reaper периодически убирает комнаты, простоявшие пустыми
// дольше льготного периода
type Reaper struct {
	controller *Controller
	stop       chan struct{}
}

func NewReaper(c *Controller) *Reaper {
	return &Reaper{
		controller: c,
		stop:       make(chan struct{}),
	}
}

// Run крутит цикл зачистки до вызова Stop
func (r *Reaper) Run() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Reaper) Stop() {
	close(r.stop)
}

// Sweep один раз обходит все комнаты
func (r *Reaper) Sweep() {
	for _, room := range r.controller.registry.Snapshot() {
		room.mu.Lock()
		expired := room.emptySince != nil && time.Since(*room.emptySince) > emptyGrace
		room.mu.Unlock()

		if expired {
			r.controller.teardown(room)
		}
	}
}
