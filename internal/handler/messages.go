package handler

import (
	"net/http"
	"time"

	"github.com/Ron-Caster/POP-Messenger/internal/middleware"
	"github.com/Ron-Caster/POP-Messenger/internal/store"
	"github.com/Ron-Caster/POP-Messenger/internal/util"

	"github.com/gin-gonic/gin"
)

// MessageHandler serves the JSON messaging endpoints.
type MessageHandler struct {
	Messages *store.Messages
	Users    *store.Users
}

func NewMessageHandler(messages *store.Messages, users *store.Users) *MessageHandler {
	return &MessageHandler{Messages: messages, Users: users}
}

type sendReq struct {
	Receiver string `json:"receiver" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

type messageResp struct {
	Sender    string    `json:"sender"`
	Receiver  string    `json:"receiver"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Direction string    `json:"direction"`
}

// Send appends a message from the session user. The sender is always
// the authenticated user, never client input.
func (h *MessageHandler) Send(c *gin.Context) {
	sender := middleware.CurrentUser(c)

	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, "receiver and message are required")
		return
	}

	if _, err := h.Messages.Append(sender, req.Receiver, req.Message); err != nil {
		util.Fail(c, http.StatusInternalServerError, "")
		return
	}
	util.OK(c, nil)
}

// ConversationWith returns the full history between the session user and
// the named user, each entry labelled sent/received relative to the
// session user.
func (h *MessageHandler) ConversationWith(c *gin.Context) {
	user := middleware.CurrentUser(c)
	other := c.Param("username")

	msgs, err := h.Messages.Conversation(user, other)
	if err != nil {
		util.Fail(c, http.StatusInternalServerError, "")
		return
	}

	out := make([]messageResp, 0, len(msgs))
	for _, m := range msgs {
		direction := "received"
		if m.Sender == user {
			direction = "sent"
		}
		out = append(out, messageResp{
			Sender:    m.Sender,
			Receiver:  m.Receiver,
			Message:   m.Body,
			Timestamp: m.CreatedAt,
			Direction: direction,
		})
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}

// ListUsers returns every username except the session user's own.
func (h *MessageHandler) ListUsers(c *gin.Context) {
	user := middleware.CurrentUser(c)

	users, err := h.Users.ListOthers(user)
	if err != nil {
		util.Fail(c, http.StatusInternalServerError, "")
		return
	}
	if users == nil {
		users = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
