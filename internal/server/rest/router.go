// Package rest is the HTTP API of the server, built on gin.
package rest

import (
	"github.com/dmitrijs2005/polyglot/internal/logging"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. Everything under /api except register and
// login requires a bearer session.
func NewRouter(h *Handler, sessions SessionValidator, log logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/healthz", h.Health)

	api := r.Group("/api")

	public := api.Group("/auth")
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)

	private := api.Group("", AuthMiddleware(sessions, log))
	private.POST("/auth/logout", h.Logout)
	private.GET("/preferences", h.GetPreferences)
	private.PUT("/preferences", h.UpdatePreferences)
	private.POST("/translations", h.SaveTranslation)
	private.GET("/translations", h.ListTranslations)
	private.POST("/translate", h.Translate)
	private.POST("/transcribe", h.Transcribe)
	private.POST("/voice/upload-url", h.UploadURL)

	return r
}
