package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Ron-Caster/POP-Messenger/internal/middleware"
	"github.com/Ron-Caster/POP-Messenger/internal/stream"
	"github.com/Ron-Caster/POP-Messenger/internal/util"

	"github.com/gin-gonic/gin"
)

// StreamHandler serves the per-viewer server-sent event feed.
type StreamHandler struct {
	Poller *stream.Poller
}

func NewStreamHandler(poller *stream.Poller) *StreamHandler {
	return &StreamHandler{Poller: poller}
}

// Stream opens the live update feed for the session user. The viewer is
// always the authenticated username; a ?username= parameter naming
// anyone else is rejected rather than trusted.
func (h *StreamHandler) Stream(c *gin.Context) {
	viewer := middleware.CurrentUser(c)

	if q := c.Query("username"); q != "" && q != viewer {
		util.Fail(c, http.StatusForbidden, "stream is bound to your own session")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	_ = h.Poller.Run(ctx, viewer, func(ev stream.Event) bool {
		data, err := json.Marshal(ev)
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			return false
		}
		c.Writer.Flush()
		return true
	})
}
