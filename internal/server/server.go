// Package server exposes one game session over HTTP. Every action answers
// with the board as it stands afterwards, so a client never has to guess
// whether a rejected move changed anything.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/patience/internal/board"
	"github.com/arcanaland/patience/internal/engine"
	"github.com/arcanaland/patience/internal/layout"
)

const shutdownTimeout = 5 * time.Second

// Server routes HTTP requests to a game
type Server struct {
	game   *engine.Game
	log    *zap.Logger
	router *gin.Engine

	// mu pairs each action with the board it produced
	mu sync.Mutex
}

// Response is the body of every game endpoint
type Response struct {
	Accepted bool           `json:"accepted"`
	Reason   string         `json:"reason,omitempty"`
	Session  string         `json:"session"`
	Board    *layout.Layout `json:"board"`
}

type moveRequest struct {
	Card string `json:"card" binding:"required"`
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

type promoteRequest struct {
	Card string `json:"card" binding:"required"`
}

// New builds the router for g
func New(g *engine.Game, log *zap.Logger) *Server {
	s := &Server{
		game:   g,
		log:    log,
		router: gin.New(),
	}

	s.router.Use(requestLogger(log), gin.Recovery())

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/game")
	api.GET("", s.getGame)
	api.POST("/new", s.newGame)
	api.POST("/draw", s.draw)
	api.POST("/move", s.move)
	api.POST("/promote", s.promote)
	api.POST("/surrender", s.surrender)

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("Listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *Server) getGame(c *gin.Context) {
	s.respond(c, func() error { return nil })
}

func (s *Server) newGame(c *gin.Context) {
	s.respond(c, func() error {
		_, err := s.game.StartNewGame()
		return err
	})
}

func (s *Server) draw(c *gin.Context) {
	s.respond(c, s.game.DrawFromStock)
}

func (s *Server) move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	from, err := board.ParseZoneRef(req.From)
	if err != nil {
		badRequest(c, err)
		return
	}
	to, err := board.ParseZoneRef(req.To)
	if err != nil {
		badRequest(c, err)
		return
	}

	s.respond(c, func() error { return s.game.AttemptMove(req.Card, from, to) })
}

func (s *Server) promote(c *gin.Context) {
	var req promoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	s.respond(c, func() error { return s.game.AttemptAutoPromote(req.Card) })
}

func (s *Server) surrender(c *gin.Context) {
	s.respond(c, s.game.Surrender)
}

// respond runs action and writes its outcome with the board it left
// behind. Actions from concurrent requests do not interleave.
func (s *Server) respond(c *gin.Context, action func() error) {
	s.mu.Lock()
	err := action()
	session, b := s.game.State()
	s.mu.Unlock()

	resp := Response{
		Accepted: err == nil,
		Session:  session,
		Board:    layout.FromBoard(b),
	}

	status := http.StatusOK
	if err != nil {
		resp.Reason = err.Error()
		switch {
		case errors.Is(err, engine.ErrInvalidMove), errors.Is(err, engine.ErrGameOver):
			status = http.StatusConflict
		case errors.Is(err, engine.ErrClosed):
			status = http.StatusServiceUnavailable
		default:
			status = http.StatusInternalServerError
			s.log.Error("Action failed", zap.Error(err))
		}
	}

	c.JSON(status, resp)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"accepted": false, "reason": err.Error()})
}

// requestLogger logs each request once it has been handled
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Debug("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
