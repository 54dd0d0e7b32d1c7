package logstream

import (
	"github.com/sirupsen/logrus"
	"sync"
	"time"
)

const defaultBuffer = 64

type Entry struct {
	Time    time.Time              `json:"time"`
	Level   string                 `json:"level"`
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

type IHub interface {
	Subscribe() (<-chan Entry, func())
	Publish(entry Entry)
	Subscribers() int
}

// Hub fans log entries out to live viewers. A viewer that cannot keep up
// loses entries instead of blocking the logger.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan Entry
	nextID uint64
	buffer int
}

func NewHub() *Hub {
	return &Hub{
		subs:   make(map[uint64]chan Entry),
		buffer: defaultBuffer,
	}
}

func (h *Hub) Subscribe() (<-chan Entry, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan Entry, h.buffer)
	h.subs[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}

	return ch, unsubscribe
}

func (h *Hub) Publish(entry Entry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs {
		select {
		case ch <- entry:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Hook is a logrus hook that forwards every entry to the hub.
type Hook struct {
	hub    IHub
	levels []logrus.Level
}

func NewHook(hub IHub, level logrus.Level) *Hook {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, l := range logrus.AllLevels {
		if l <= level {
			levels = append(levels, l)
		}
	}
	return &Hook{hub: hub, levels: levels}
}

func (h *Hook) Levels() []logrus.Level {
	return h.levels
}

func (h *Hook) Fire(e *logrus.Entry) error {
	if h.hub.Subscribers() == 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(e.Data))
	for k, v := range e.Data {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fields[k] = v
	}

	h.hub.Publish(Entry{
		Time:    e.Time,
		Level:   e.Level.String(),
		Message: e.Message,
		Fields:  fields,
	})
	return nil
}
