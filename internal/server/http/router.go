package httpserver

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amatveev/feedhub/internal/auth"
	"github.com/amatveev/feedhub/internal/blob"
	"github.com/amatveev/feedhub/internal/broadcast"
	"github.com/amatveev/feedhub/internal/service"
)

// RouterConfig collects everything the HTTP layer depends on.
type RouterConfig struct {
	Logger   *zap.Logger
	Resolver *auth.Resolver
	Accounts service.AccountService
	Feed     service.FeedService
	Hub      *broadcast.Hub
	Blobs    blob.Store
	ImageDir string
}

// NewRouter wires handlers, middleware and routes into an echo instance.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)

	e.Use(Recover(cfg.Logger))
	e.Use(RequestLogger(cfg.Logger))
	e.Use(Identity(cfg.Resolver))

	accounts := NewAccountHandler(cfg.Accounts)
	feed := NewFeedHandler(cfg.Feed, cfg.Blobs)
	stream := NewStreamHandler(cfg.Hub, cfg.Logger)

	ag := e.Group("/auth")
	ag.PUT("/signup", accounts.Signup)
	ag.POST("/login", accounts.Login)
	ag.GET("/status", accounts.GetStatus)
	ag.PATCH("/status", accounts.UpdateStatus)

	fg := e.Group("/feed")
	fg.GET("/posts", feed.ListPosts)
	fg.POST("/post", feed.CreatePost)
	fg.GET("/post/:postId", feed.GetPost)
	fg.PUT("/post/:postId", feed.UpdatePost)
	fg.DELETE("/post/:postId", feed.DeletePost)
	fg.POST("/image", feed.UploadImage)
	fg.GET("/stream", stream.Stream)

	e.Static("/images", cfg.ImageDir)

	return e
}
