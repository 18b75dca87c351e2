package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gameplan-service/internal/models"
	"gameplan-service/internal/observability"
)

// TopicChats carries the chat list.
const TopicChats = "chats"

// ChatTopic names the message timeline topic of one chat.
func ChatTopic(chatID int) string {
	return fmt.Sprintf("chat:%d", chatID)
}

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Loader produces a fresh snapshot for a topic nobody has published yet.
type Loader func(ctx context.Context) (any, error)

type subscriber struct {
	info ConnInfo
	mu   sync.Mutex
}

type topicState struct {
	snapshot []byte
	version  int64
	subs     map[Conn]*subscriber
	// retired topics are removed once their last subscriber leaves.
	retired bool
}

// Hub keeps the latest snapshot of every topic and fans new ones out to the
// topic's subscribers.
type Hub struct {
	topics map[string]*topicState
	mu     sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{topics: make(map[string]*topicState)}
}

func (h *Hub) topic(name string) *topicState {
	st, ok := h.topics[name]
	if !ok {
		st = &topicState{subs: make(map[Conn]*subscriber)}
		h.topics[name] = st
	}
	return st
}

// Subscribe registers conn on topic and sends it the current snapshot. When
// the topic has no snapshot yet, load is called and its result published,
// unless a newer snapshot was published while loading. conn is already
// subscribed by then and has received that one.
func (h *Hub) Subscribe(ctx context.Context, topic string, conn Conn, info ConnInfo, load Loader) error {
	h.mu.Lock()
	st := h.topic(topic)
	sub := &subscriber{info: info}
	st.subs[conn] = sub
	payload := st.snapshot
	version := st.version
	h.mu.Unlock()

	if payload == nil {
		if load == nil {
			return nil
		}
		data, err := load(ctx)
		if err != nil {
			h.Unsubscribe(topic, conn)
			return err
		}
		return h.publish(topic, data, version)
	}

	if err := sub.write(conn, payload); err != nil {
		h.drop(topic, conn, info, err)
		return err
	}
	return nil
}

// Unsubscribe removes conn from topic. The topic's snapshot is kept unless
// the topic was retired and conn was its last subscriber.
func (h *Hub) Unsubscribe(topic string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if st, ok := h.topics[topic]; ok {
		delete(st.subs, conn)
		if st.retired && len(st.subs) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Retire forgets topic and its snapshot. A topic that still has subscribers
// is removed when the last one leaves.
func (h *Hub) Retire(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, ok := h.topics[topic]
	if !ok {
		return
	}
	if len(st.subs) == 0 {
		delete(h.topics, topic)
		return
	}
	st.retired = true
}

// Publish replaces the topic snapshot with data and pushes it to every
// subscriber. Subscribers that fail to receive it are closed and removed.
func (h *Hub) Publish(topic string, data any) error {
	return h.publish(topic, data, -1)
}

// publish does the work of Publish. With expect >= 0 nothing happens unless
// the topic is still at that version.
func (h *Hub) publish(topic string, data any, expect int64) error {
	h.mu.Lock()
	st := h.topic(topic)
	if expect >= 0 && st.version != expect {
		h.mu.Unlock()
		return nil
	}
	st.version++
	payload, err := json.Marshal(models.SnapshotEvent{
		Type:    "snapshot",
		Topic:   topic,
		Version: st.version,
		Data:    data,
	})
	if err != nil {
		st.version--
		h.mu.Unlock()
		return err
	}
	st.snapshot = payload
	targets := make(map[Conn]*subscriber, len(st.subs))
	for conn, sub := range st.subs {
		targets[conn] = sub
	}
	h.mu.Unlock()

	observability.IncSnapshotPublished(topicKind(topic))
	for conn, sub := range targets {
		if err := sub.write(conn, payload); err != nil {
			slog.Warn("websocket write error", "topic", topic, "conn_id", sub.info.ConnID, "err", err)
			h.drop(topic, conn, sub.info, err)
		}
	}
	return nil
}

// Snapshot returns the latest payload published on topic and its version.
func (h *Hub) Snapshot(topic string) ([]byte, int64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	st, ok := h.topics[topic]
	if !ok || st.snapshot == nil {
		return nil, 0, false
	}
	return st.snapshot, st.version, true
}

// Topics counts the topics the hub holds state for.
func (h *Hub) Topics() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics)
}

// Subscribers counts the connections on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if st, ok := h.topics[topic]; ok {
		return len(st.subs)
	}
	return 0
}

func (s *subscriber) write(conn Conn, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, payload)
}

func (h *Hub) drop(topic string, conn Conn, info ConnInfo, err error) {
	_ = conn.Close()
	h.Unsubscribe(topic, conn)
	publishWSEvent(context.Background(), topic, "ws_error", info, err.Error())
}

func topicKind(topic string) string {
	if strings.HasPrefix(topic, "chat:") {
		return "messages"
	}
	return "chats"
}

func publishWSEvent(ctx context.Context, topic, event string, info ConnInfo, reason string) {
	kind := topicKind(topic)
	var durationMS int64
	if event != "ws_connect" {
		durationMS = time.Since(info.ConnectedAt).Milliseconds()
	}

	payload := map[string]any{
		"ws": map[string]any{
			"kind":        kind,
			"topic":       topic,
			"event":       event,
			"conn_id":     info.ConnID,
			"duration_ms": durationMS,
			"reason":      reason,
		},
		"identity": map[string]any{
			"user_id": info.UserID,
			"ip":      info.IP,
		},
	}

	observability.IncWSEvent(kind, event)
	_ = observability.PublishEvent(ctx, "ws_events.chats", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload:   payload,
	}, observability.BuildHeaders(info.RequestID, info.TraceID))
}
