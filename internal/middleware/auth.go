package middleware

import (
	"net/http"

	"github.com/Ron-Caster/POP-Messenger/internal/session"
	"github.com/Ron-Caster/POP-Messenger/internal/util"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// AuthRequired resolves the session and puts the username into the
// context. Requests without a live session are rejected with 401 before
// any handler touches storage.
func AuthRequired(auth *session.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := auth.Current(c)
		if err != nil {
			util.Fail(c, http.StatusUnauthorized, "")
			c.Abort()
			return
		}
		c.Set(currentUserKey, username)
		c.Next()
	}
}

// CurrentUser returns the username set by AuthRequired.
func CurrentUser(c *gin.Context) string {
	if v, ok := c.Get(currentUserKey); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
