// Package dbapi serves the database-backed variant: the same boundary
// contract as the file-backed API, backed by PostgreSQL, with token sessions
// and the level / submission / knowledge-base surface on top.
package dbapi

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/learnhub-io/learnhub/config"
	"github.com/learnhub-io/learnhub/database"
	"github.com/learnhub-io/learnhub/dbapi/auth"
	"github.com/learnhub-io/learnhub/dbapi/handler"
)

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
}

func New(cfg *config.Config, db *database.DB, sessions auth.SessionStore) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
	}
	s.setupRoutes(handler.New(db, sessions), sessions)
	return s, nil
}

func (s *Server) setupRoutes(h *handler.Handler, sessions auth.SessionStore) {
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	s.ginEngine.POST("/auth/register", h.Register)
	s.ginEngine.POST("/auth/login", h.Login)

	api := s.ginEngine.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/courses", h.ListCourses)
	api.GET("/courses/:id", h.GetCourse)
	api.GET("/levels", h.ListLevels)
	api.GET("/levels/:id", h.GetLevel)
	api.GET("/knowledge", h.ListKnowledge)

	protected := api.Group("/")
	protected.Use(auth.RequireSession(sessions))
	protected.POST("/submissions", h.CreateSubmission)
	protected.GET("/submissions", h.ListSubmissions)

	s.ginEngine.POST("/auth/logout", auth.RequireSession(sessions), h.Logout)

	s.ginEngine.NoRoute(s.serveStatic)
}

// serveStatic mirrors the file-backed variant: JSON 404 for unknown API
// paths, static assets otherwise, SPA index as the fallback.
func (s *Server) serveStatic(c *gin.Context) {
	reqPath := c.Request.URL.Path

	if reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") || strings.HasPrefix(reqPath, "/auth/") ||
		c.Request.Method != http.MethodGet {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}

	if strings.Contains(reqPath, "..") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden."})
		return
	}

	file := filepath.Join(s.cfg.WebDir, filepath.Clean("/"+reqPath))
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		c.File(file)
		return
	}

	index := filepath.Join(s.cfg.WebDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return
	}
	c.File(index)
}

func (s *Server) Run() error {
	return s.ginEngine.Run(s.cfg.Listen)
}
