package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gameplan-service/internal/display"
	"gameplan-service/internal/models"
	"gameplan-service/internal/repositories"
	"gameplan-service/internal/telemetry"
	"gameplan-service/internal/ws"
)

const anonymousSender = "anonymous"

// ChatHandler serves the chat list and conversation screens.
type ChatHandler struct {
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	feed        LiveFeed
	emitter     *telemetry.AuditEmitter
	loc         *time.Location
}

// NewChatHandler builds a ChatHandler. feed and emitter may be nil.
func NewChatHandler(chatRepo repositories.ChatRepository, messageRepo repositories.MessageRepository, feed LiveFeed, emitter *telemetry.AuditEmitter, loc *time.Location) *ChatHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ChatHandler{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		feed:        feed,
		emitter:     emitter,
		loc:         loc,
	}
}

// ListChats returns every chat in creation order, narrowed by ?q= when given.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chatRepo.ListChats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chats"})
		return
	}

	if q, ok := c.GetQuery("q"); ok {
		chats = display.Filter(chats, q, func(ch models.Chat) string { return ch.Name })
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// CreateChat adds a team or private chat.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		Type      string `json:"type"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter a chat name"})
		return
	}
	chatType := req.Type
	if chatType == "" {
		chatType = models.ChatTypeTeam
	}
	if chatType != models.ChatTypeTeam && chatType != models.ChatTypePrivate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chat type must be team or private"})
		return
	}

	chat, err := h.chatRepo.CreateChat(c.Request.Context(), name, chatType, strings.TrimSpace(req.AvatarURL))
	if err != nil {
		writeFailed(c, "create chat", err)
		return
	}

	h.refreshChats(c)
	audit(c, h.emitter, "INFO", "chat created: "+chat.DisplayName(), ws.ChatTopic(chat.ID))
	c.JSON(http.StatusCreated, chat)
}

// DeleteChat removes a chat and its messages.
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	chatID, ok := parseID(c, "chat_id", "chat")
	if !ok {
		return
	}

	if err := h.chatRepo.DeleteChat(c.Request.Context(), chatID); err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		writeFailed(c, "delete chat", err)
		return
	}

	h.refreshChats(c)
	h.chatDeleted(c, chatID)
	audit(c, h.emitter, "INFO", "chat deleted", ws.ChatTopic(chatID))
	c.Status(http.StatusNoContent)
}

// BatchDeleteChats deletes every selected chat and reports each outcome.
func (h *ChatHandler) BatchDeleteChats(c *gin.Context) {
	var req batchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, deleted := deleteBatch(c.Request.Context(), req.IDs, h.chatRepo.DeleteChat)
	if deleted > 0 {
		h.refreshChats(c)
		for _, r := range results {
			if r.Deleted {
				h.chatDeleted(c, r.ID)
			}
		}
		audit(c, h.emitter, "INFO", "chats deleted", "chats")
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetMessages returns a chat's messages oldest first, or in day sections
// with ?grouped=true.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	chatID, ok := parseID(c, "chat_id", "chat")
	if !ok {
		return
	}
	if !h.ensureChat(c, chatID) {
		return
	}

	msgs, err := h.messageRepo.ListMessages(c.Request.Context(), chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load messages"})
		return
	}

	if c.Query("grouped") == "true" {
		c.JSON(http.StatusOK, gin.H{"sections": ws.GroupMessages(msgs, h.loc)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostMessage appends a message and pushes the new timeline to subscribers.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	chatID, ok := parseID(c, "chat_id", "chat")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message text is required"})
		return
	}

	if !h.ensureChat(c, chatID) {
		return
	}

	sender := anonymousSender
	if userID := userIDFromContext(c); userID != nil {
		sender = *userID
	}

	msg, err := h.messageRepo.CreateMessage(c.Request.Context(), chatID, sender, req.Text)
	if err != nil {
		writeFailed(c, "send message", err)
		return
	}

	h.refreshMessages(c, chatID)
	c.JSON(http.StatusCreated, msg)
}

func (h *ChatHandler) ensureChat(c *gin.Context, chatID int) bool {
	if _, err := h.chatRepo.GetChat(c.Request.Context(), chatID); err != nil {
		if errors.Is(err, repositories.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat"})
		return false
	}
	return true
}

func (h *ChatHandler) refreshChats(c *gin.Context) {
	if h.feed != nil {
		refresh("chats", h.feed.RefreshChats(c.Request.Context()))
	}
}

func (h *ChatHandler) refreshMessages(c *gin.Context, chatID int) {
	if h.feed != nil {
		refresh(ws.ChatTopic(chatID), h.feed.RefreshMessages(c.Request.Context(), chatID))
	}
}

func (h *ChatHandler) chatDeleted(c *gin.Context, chatID int) {
	if h.feed != nil {
		refresh(ws.ChatTopic(chatID), h.feed.ChatDeleted(c.Request.Context(), chatID))
	}
}
