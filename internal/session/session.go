package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ron-Caster/POP-Messenger/internal/models"
	"github.com/Ron-Caster/POP-Messenger/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrUnauthenticated means the request carries no live session.
var ErrUnauthenticated = errors.New("unauthenticated")

// Authority maps requests to usernames. Sessions are server-side rows
// referenced by a signed cookie, so logout actually revokes; the cookie
// alone is not trusted.
type Authority struct {
	db         *gorm.DB
	secret     string
	cookieName string
	ttl        time.Duration
}

// New builds an Authority. An empty secret gets a random per-process
// one, which invalidates all sessions on restart.
func New(db *gorm.DB, secret, cookieName string, ttlHours int) (*Authority, error) {
	if secret == "" {
		s, err := util.RandomString(32)
		if err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		secret = s
	}
	if cookieName == "" {
		cookieName = "pop_session"
	}
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &Authority{
		db:         db,
		secret:     secret,
		cookieName: cookieName,
		ttl:        time.Duration(ttlHours) * time.Hour,
	}, nil
}

// Issue creates a session for username and sets the signed cookie.
// Used by both login and signup; signup implicitly authenticates.
func (a *Authority) Issue(c *gin.Context, username string) error {
	sess := models.Session{
		ID:        uuid.NewString(),
		Username:  username,
		ExpiresAt: time.Now().Add(a.ttl),
	}
	if err := a.db.Create(&sess).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	token, err := util.GenerateToken(a.secret, sess.ID, username, a.ttl)
	if err != nil {
		return fmt.Errorf("sign session token: %w", err)
	}

	c.SetCookie(a.cookieName, token, int(a.ttl.Seconds()), "/", "", false, true)
	return nil
}

// Current resolves the request to a username, or ErrUnauthenticated.
// The cookie is parsed and verified, then the referenced session row
// must exist, be unrevoked and unexpired.
func (a *Authority) Current(c *gin.Context) (string, error) {
	tokenStr, err := c.Cookie(a.cookieName)
	if err != nil || tokenStr == "" {
		return "", ErrUnauthenticated
	}

	claims, err := util.ParseToken(a.secret, tokenStr)
	if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
		return "", ErrUnauthenticated
	}

	var sess models.Session
	if err := a.db.First(&sess, "id = ?", claims.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUnauthenticated
		}
		return "", fmt.Errorf("lookup session: %w", err)
	}
	if sess.Revoked || time.Now().After(sess.ExpiresAt) || sess.Username != claims.Username {
		return "", ErrUnauthenticated
	}

	return sess.Username, nil
}

// Revoke invalidates the request's session, if any, and clears the
// cookie. Idempotent: revoking an absent or already-revoked session is
// a no-op.
func (a *Authority) Revoke(c *gin.Context) {
	if tokenStr, err := c.Cookie(a.cookieName); err == nil && tokenStr != "" {
		if claims, err := util.ParseToken(a.secret, tokenStr); err == nil {
			_ = a.db.Model(&models.Session{}).
				Where("id = ?", claims.SessionID).
				Update("revoked", true).Error
		}
	}
	c.SetCookie(a.cookieName, "", -1, "/", "", false, true)
}
