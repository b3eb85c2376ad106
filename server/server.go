// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/solvent"
)

// Server wraps an Advisor with an HTTP surface.
type Server struct {
	advisor *solvent.Advisor
	logger  *slog.Logger
	mode    string

	router *gin.Engine
	http   *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMode sets the gin mode (gin.DebugMode, gin.ReleaseMode, gin.TestMode).
// Default is gin.ReleaseMode.
func WithMode(mode string) Option {
	return func(s *Server) { s.mode = mode }
}

// New assembles the router and middleware around the advisor. The server does
// not accept connections until Start is called.
func New(advisor *solvent.Advisor, addr string, opts ...Option) *Server {
	s := &Server{
		advisor: advisor,
		mode:    gin.ReleaseMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "server")

	gin.SetMode(s.mode)
	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/health", s.health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", s.analyze)
		v1.GET("/features/:id", s.feature)
		v1.GET("/categories", s.categories)
		v1.GET("/categories/:name/features", s.categoryFeatures)
		v1.GET("/examples", s.examples)
	}

	s.router = router
	s.http = &http.Server{
		Addr:    addr,
		Handler: router,
	}
	return s
}

// Handler returns the configured router. Intended for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Stop is called or the listener fails.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully, draining in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server stopping")
	return s.http.Shutdown(ctx)
}

// corsMiddleware adds CORS headers so browser clients can call the API from
// any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
