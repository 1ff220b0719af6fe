package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Ron-Caster/POP-Messenger/internal/session"
	"github.com/Ron-Caster/POP-Messenger/internal/store"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the login/signup forms and logout.
type AuthHandler struct {
	Users    *store.Users
	Sessions *session.Authority
}

func NewAuthHandler(users *store.Users, sessions *session.Authority) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions}
}

// ---------- login ----------

func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	_, err := h.Users.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"error": "Something went wrong, try again",
		})
		return
	}

	if err := h.Sessions.Issue(c, username); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"error": "Something went wrong, try again",
		})
		return
	}
	c.Redirect(http.StatusFound, "/messages")
}

// ---------- signup ----------

func (h *AuthHandler) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{
			"error": "Username and password are required",
		})
		return
	}

	_, err := h.Users.Register(username, password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			c.HTML(http.StatusConflict, "signup.html", gin.H{
				"error": "Username taken",
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{
			"error": "Something went wrong, try again",
		})
		return
	}

	if err := h.Sessions.Issue(c, username); err != nil {
		c.HTML(http.StatusInternalServerError, "signup.html", gin.H{
			"error": "Something went wrong, try again",
		})
		return
	}
	c.Redirect(http.StatusFound, "/messages")
}

// ---------- logout ----------

// Logout revokes the session (idempotent) and sends the client back to
// the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Sessions.Revoke(c)
	c.Redirect(http.StatusFound, "/login")
}
