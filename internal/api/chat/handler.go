package chat

import (
	"errors"
	"net/http"
	"strconv"

	"artfeed-backend/internal/domain/chat"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Channel *chat.Channel
}

func NewHandler(channel *chat.Channel) *Handler {
	return &Handler{Channel: channel}
}

func (h *Handler) Contacts(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	contacts, err := h.Channel.Contacts(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load contacts"})
		return
	}
	c.JSON(http.StatusOK, contacts)
}

func (h *Handler) Messages(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}
	other := c.Query("with")
	if other == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'with' parameter"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	msgs, err := h.Channel.History(user, other, limit)
	if err != nil {
		if errors.Is(err, chat.ErrNotMutual) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load messages"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *Handler) Send(c *gin.Context) {
	user := c.GetString("username")
	if user == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login required"})
		return
	}

	var input struct {
		To      string `json:"to" binding:"required"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Channel.Send(user, input.To, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "empty"})
		case errors.Is(err, chat.ErrNotMutual):
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": msg.ID})
}
