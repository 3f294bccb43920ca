package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Event struct {
	ID   int64       `json:"id"`
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type subscriber struct {
	ch chan Event
}

// Hub fans project activity events out to connected SSE clients. Events are
// also appended to a per-project redis list so a reconnecting client can
// replay from its Last-Event-ID. A nil redis client disables persistence;
// live fan-out still works.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint][]*subscriber // projectID -> subscribers
	rdb         *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		subscribers: make(map[uint][]*subscriber),
		rdb:         rdb,
	}
}

func (h *Hub) Subscribe(projectID uint) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscriber{ch: make(chan Event, 64)}
	h.subscribers[projectID] = append(h.subscribers[projectID], sub)

	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subscribers[projectID]
		for i, s := range subs {
			if s == sub {
				h.subscribers[projectID] = append(subs[:i], subs[i+1:]...)
				close(sub.ch)
				break
			}
		}
		if len(h.subscribers[projectID]) == 0 {
			delete(h.subscribers, projectID)
		}
	}
	return sub.ch, unsub
}

func (h *Hub) Broadcast(ctx context.Context, projectID uint, event Event) {
	if h.rdb != nil {
		data, _ := json.Marshal(event)
		key := streamKey(projectID)
		h.rdb.RPush(ctx, key, string(data))
		h.rdb.Expire(ctx, key, 24*time.Hour)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers[projectID] {
		select {
		case sub.ch <- event:
		default:
			// drop if full
		}
	}
}

// ReplayFrom returns persisted events starting at fromID (a list offset).
func (h *Hub) ReplayFrom(ctx context.Context, projectID uint, fromID int64) ([]Event, error) {
	if h.rdb == nil {
		return nil, nil
	}
	if fromID < 0 {
		fromID = 0
	}
	items, err := h.rdb.LRange(ctx, streamKey(projectID), fromID, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(items))
	for i, item := range items {
		var ev Event
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			continue
		}
		ev.ID = fromID + int64(i)
		events = append(events, ev)
	}
	return events, nil
}

func streamKey(projectID uint) string {
	return fmt.Sprintf("project:activity:%d", projectID)
}

// ParseLastEventID turns the Last-Event-ID header into the offset of the
// first event to replay. The client last saw the event it names, so replay
// resumes one past it; an absent or unusable header replays from the start.
func ParseLastEventID(header string) int64 {
	if header == "" {
		return 0
	}
	id, err := strconv.ParseInt(header, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id + 1
}
