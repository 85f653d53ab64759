// Package server hosts the stock widget page and its JSON and websocket API.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"StockBoard/internal/model"
	"StockBoard/internal/widget"
)

//go:embed templates/*.html
var templates embed.FS

// Server serves the widget over HTTP.
type Server struct {
	ctx    context.Context
	widget *widget.Widget
	engine *gin.Engine
	log    zerolog.Logger

	// tasks tracks event handlers that outlive their request.
	tasks sync.WaitGroup
}

type hoverRequest struct {
	X        string `json:"x" binding:"required"`
	Revision uint64 `json:"revision"`
}

type leaveRequest struct {
	Revision uint64 `json:"revision"`
}

// New builds the gin engine. ctx bounds the background work started by UI
// events.
func New(ctx context.Context, w *widget.Widget, log zerolog.Logger) *Server {
	s := &Server{
		ctx:    ctx,
		widget: w,
		log:    log.With().Str("component", "server").Logger(),
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))

	r.GET("/", s.index)
	r.GET("/healthz", s.healthCheck)
	r.GET("/ws", s.serveWS)

	api := r.Group("/api")
	{
		api.GET("/view", s.view)
		api.GET("/chart", s.chart)
		api.POST("/tickers/:ticker/select", s.selectTicker)
		api.POST("/ranges/:label", s.selectRange)
		api.POST("/hover", s.hover)
		api.POST("/leave", s.leave)
	}

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Wait blocks until background event handlers finish.
func (s *Server) Wait() { s.tasks.Wait() }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.Wait()
	s.log.Info().Msg("server stopped")
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Ranges": model.RangeLabels,
		"View":   NewView(s.widget.Store().State()),
	})
}

func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (s *Server) view(c *gin.Context) {
	c.JSON(http.StatusOK, NewView(s.widget.Store().State()))
}

func (s *Server) chart(c *gin.Context) {
	fig := s.widget.Store().State().Data.Chart
	if fig == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, fig)
}

func (s *Server) selectTicker(c *gin.Context) {
	ticker := c.Param("ticker")
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()
		s.widget.List().Click(s.ctx, ticker)
	}()
	c.Status(http.StatusAccepted)
}

func (s *Server) selectRange(c *gin.Context) {
	s.widget.SelectRange(c.Param("label"))
	c.Status(http.StatusAccepted)
}

func (s *Server) hover(c *gin.Context) {
	var req hoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.widget.HoverAt(req.Revision, req.X); err != nil {
		s.log.Error().Err(err).Msg("hover")
	}
	c.Status(http.StatusAccepted)
}

func (s *Server) leave(c *gin.Context) {
	var req leaveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := s.widget.LeaveAt(req.Revision); err != nil {
		s.log.Error().Err(err).Msg("leave")
	}
	c.Status(http.StatusAccepted)
}
