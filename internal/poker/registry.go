package poker

import "sync"

// Registry владеет множеством живых комнат.
// Карта защищена своим RWMutex, состояние комнаты — её собственным.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate возвращает комнату, создавая её при первом обращении.
// Конкурирующие первые входы получают один и тот же объект.
func (r *Registry) GetOrCreate(id string) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[id]; ok {
		return room
	}
	room := newRoom(id)
	r.rooms[id] = room
	return room
}

func (r *Registry) Get(id string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	return room, ok
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, id)
}

// Snapshot возвращает срез комнат для обхода рипером
func (r *Registry) Snapshot() []*Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
