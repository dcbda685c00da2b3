// Package httpapi exposes the engine over HTTP: message streaming via
// SSE, conversation management, and agent metadata.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voyantic/concierge/agents"
	"github.com/voyantic/concierge/orchestrator"
	"github.com/voyantic/concierge/store"
)

type Config struct {
	logger *slog.Logger
}

type Option func(*Config)

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

type Server struct {
	Config
	engine        *gin.Engine
	orch          *orchestrator.Orchestrator
	conversations store.ConversationStore
	registry      *agents.Registry
}

func New(orch *orchestrator.Orchestrator, conversations store.ConversationStore, registry *agents.Registry, options ...Option) *Server {
	srv := &Server{
		orch:          orch,
		conversations: conversations,
		registry:      registry,
	}
	for _, opt := range options {
		opt(&srv.Config)
	}
	if srv.logger == nil {
		srv.logger = slog.Default()
	}
	srv.engine = gin.New()
	srv.engine.Use(gin.Recovery())
	srv.routes()
	return srv
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.health)
	api.POST("/chat/messages", s.sendMessage)
	api.GET("/chat/conversations", s.listConversations)
	api.GET("/chat/conversations/:id", s.getConversation)
	api.DELETE("/chat/conversations/:id", s.deleteConversation)
	api.GET("/agents", s.listAgents)
	api.GET("/agents/:type/capabilities", s.agentCapabilities)
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// errorBody is the envelope of every non-2xx response.
func errorBody(code, message string) gin.H {
	return gin.H{"error": gin.H{"code": code, "message": message}}
}
