package handler

import (
	"net/http"

	"github.com/Ron-Caster/POP-Messenger/internal/session"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the HTML entry points.
type PageHandler struct {
	Sessions *session.Authority
}

func NewPageHandler(sessions *session.Authority) *PageHandler {
	return &PageHandler{Sessions: sessions}
}

// Home sends the client to the messaging page when logged in, otherwise
// to the login form.
func (h *PageHandler) Home(c *gin.Context) {
	if _, err := h.Sessions.Current(c); err == nil {
		c.Redirect(http.StatusFound, "/messages")
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// MessagesPage renders the messaging view for the session user.
func (h *PageHandler) MessagesPage(c *gin.Context) {
	username, err := h.Sessions.Current(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, "messages.html", gin.H{
		"username": username,
	})
}
