package events

import (
	"sync"

	"github.com/Mephistophillis/UnityCourseTracker/internal/infrastructure/uuid"
)

// ProgressEvent emitted after a lesson toggle is persisted
type ProgressEvent struct {
	UserID    string `json:"user_id"`
	ChapterID string `json:"chapter_id"`
	LessonID  string `json:"lesson_id"`
	Completed bool   `json:"completed"`
}

// Publisher sink for progress events
type Publisher interface {
	Publish(ev ProgressEvent)
}

const subscriberBuffer = 16

// Hub fan-out of progress events to websocket subscribers. Slow subscribers
// are skipped, events are notifications, the roster reload fetches the truth
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan ProgressEvent
	idGenerator uuid.Generator
}

var _ Publisher = &Hub{}

// NewHub create an empty hub
func NewHub(idGenerator uuid.Generator) *Hub {
	return &Hub{
		subscribers: make(map[string]chan ProgressEvent),
		idGenerator: idGenerator,
	}
}

// Subscribe register a subscriber, returns its id and receive channel
func (h *Hub) Subscribe() (string, <-chan ProgressEvent, error) {
	id, err := h.idGenerator.Generate()
	if err != nil {
		return "", nil, err
	}
	ch := make(chan ProgressEvent, subscriberBuffer)
	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()
	return id, ch, nil
}

// Unsubscribe drop a subscriber and close its channel, idempotent
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish deliver the event to every subscriber that can take it
func (h *Hub) Publish(ev ProgressEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}
