// Package viewer serves extraction artifacts (HTML plots, gob dumps,
// reports) from a results directory over HTTP.
package viewer

import (
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type Server struct {
	dir    string
	engine *gin.Engine
	logger *log.Logger
}

func NewServer(dir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	s := &Server{dir: dir, engine: r, logger: logger}
	r.GET("/health", s.handleHealth)
	r.GET("/artifacts", s.handleList)
	r.GET("/artifacts/*name", s.handleGet)
	return s
}

// Handler exposes the underlying http handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run blocks serving on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info("serving artifacts", "dir", s.dir, "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handleList(c *gin.Context) {
	artifacts := make([]gin.H, 0)
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		artifacts = append(artifacts, gin.H{
			"name": filepath.ToSlash(rel),
			"size": info.Size(),
		})
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"artifacts": artifacts})
}

func (s *Server) handleGet(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) || filepath.IsAbs(clean) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artifact name"})
		return
	}
	full := filepath.Join(s.dir, clean)
	if info, err := os.Stat(full); err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, gin.H{"error": "artifact not found"})
		return
	}
	c.File(full)
}
