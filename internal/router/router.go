package router

import (
	"log/slog"
	"path/filepath"

	"github.com/Ron-Caster/POP-Messenger/internal/config"
	"github.com/Ron-Caster/POP-Messenger/internal/handler"
	"github.com/Ron-Caster/POP-Messenger/internal/middleware"
	"github.com/Ron-Caster/POP-Messenger/internal/session"
	"github.com/Ron-Caster/POP-Messenger/internal/store"
	"github.com/Ron-Caster/POP-Messenger/internal/stream"
	"github.com/Ron-Caster/POP-Messenger/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires stores, the stream subsystem and all routes onto a
// Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, log *slog.Logger) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// static files and templates
	r.Static("/static", filepath.Join(cfg.Server.WebRoot, "static"))
	r.LoadHTMLGlob(filepath.Join(cfg.Server.WebRoot, "templates", "*"))

	notifier := stream.NewNotifier()
	users := store.NewUsers(db, util.PBKDF2Hasher{})
	messages := store.NewMessages(db, notifier)
	poller := stream.NewPoller(messages, notifier,
		cfg.Stream.PollInterval(), cfg.Stream.RetryBackoff(), cfg.Stream.MaxRetries, log)

	sessions, err := session.New(db, cfg.Session.Secret, cfg.Session.CookieName, cfg.Session.ExpireHours)
	if err != nil {
		return nil, err
	}

	pageHandler := handler.NewPageHandler(sessions)
	authHandler := handler.NewAuthHandler(users, sessions)
	messageHandler := handler.NewMessageHandler(messages, users)
	streamHandler := handler.NewStreamHandler(poller)

	// pages
	r.GET("/", pageHandler.Home)
	r.GET("/messages", pageHandler.MessagesPage)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/signup", authHandler.SignupPage)
	r.POST("/signup", authHandler.Signup)
	r.GET("/logout", authHandler.Logout)

	// session-gated JSON endpoints
	protected := r.Group("")
	protected.Use(middleware.AuthRequired(sessions))

	protected.GET("/stream", streamHandler.Stream)
	protected.POST("/send", messageHandler.Send)
	protected.GET("/get_user_messages/:username", messageHandler.ConversationWith)
	protected.GET("/get_users", messageHandler.ListUsers)

	return r, nil
}
