package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"gameplan-service/internal/observability"
	"gameplan-service/internal/repositories"
)

// SubscriptionHandler upgrades live subscriptions for the chat list and for
// a single chat's timeline.
type SubscriptionHandler struct {
	hub      *Hub
	feeds    *Feeds
	chatRepo repositories.ChatRepository
}

func NewSubscriptionHandler(hub *Hub, feeds *Feeds, chatRepo repositories.ChatRepository) *SubscriptionHandler {
	return &SubscriptionHandler{hub: hub, feeds: feeds, chatRepo: chatRepo}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleChats serves GET /ws/chats.
func (h *SubscriptionHandler) HandleChats(c *gin.Context) {
	h.serve(c, TopicChats, h.feeds.ChatList)
}

// HandleMessages serves GET /ws/chats/:chat_id.
func (h *SubscriptionHandler) HandleMessages(c *gin.Context) {
	chatID, err := strconv.Atoi(c.Param("chat_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	if _, err := h.chatRepo.GetChat(c.Request.Context(), chatID); err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat"})
		return
	}

	h.serve(c, ChatTopic(chatID), h.feeds.Timeline(chatID))
}

func (h *SubscriptionHandler) serve(c *gin.Context, topic string, load Loader) {
	ctx, span := otel.Tracer("gameplan-service/ws").Start(c.Request.Context(), "ws.handshake",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("ws.topic", topic)),
	)
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	userID := observability.UserIDFromRequest(c.Request)
	if userID == "" {
		userID = c.Query("user_id")
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	info := ConnInfo{
		ConnID:      newConnID(),
		UserID:      userID,
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	kind := topicKind(topic)

	// The handshake span ends with this handler; the reader outlives it.
	subCtx := context.WithoutCancel(ctx)
	if err := h.hub.Subscribe(subCtx, topic, conn, info, load); err != nil {
		slog.Error("subscribe failed", "topic", topic, "conn_id", info.ConnID, "err", err)
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "snapshot unavailable"))
		_ = conn.Close()
		return
	}

	observability.IncWSActive(kind)
	publishWSEvent(subCtx, topic, "ws_connect", info, "")

	go func() {
		var closeReason string
		defer func() {
			h.hub.Unsubscribe(topic, conn)
			observability.DecWSActive(kind)
			publishWSEvent(subCtx, topic, "ws_disconnect", info, closeReason)
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				closeReason = err.Error()
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					publishWSEvent(subCtx, topic, "ws_error", info, closeReason)
				}
				return
			}
		}
	}()
}
