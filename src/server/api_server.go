package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"stock-lens/src/analysis"
	"stock-lens/src/interfaces"
	"stock-lens/src/logger"
	"stock-lens/src/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 200
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config    *models.MConfig
	Logger    *logger.Logger
	Lookups   interfaces.ILookupService
	Watchlist interfaces.IWatchlist
	DB        interfaces.IDatabase
	engine    *gin.Engine
	http      *http.Server

	// WebSocket clients, owned by the hub goroutine
	clients     map[*Client]struct{}
	connections atomic.Int64
	broadcast   chan *models.MWatchlistSnapshot
	register    chan *Client
	unregister  chan *Client
	resync      chan *Client
	done        chan struct{}
	stopOnce    sync.Once

	// Local cache
	latestState *models.MWatchlistSnapshot
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

// NewAPIServer builds the HTTP API. db may be nil.
func NewAPIServer(cfg *models.MConfig, lookups interfaces.ILookupService, db interfaces.IDatabase, logger *logger.Logger) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:  cfg,
		Logger:  logger,
		Lookups: lookups,
		DB:      db,
		engine:  gin.New(),
		clients: make(map[*Client]struct{}),

		broadcast:  make(chan *models.MWatchlistSnapshot, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		resync:     make(chan *Client),
		done:       make(chan struct{}),

		latestState: &models.MWatchlistSnapshot{
			Type:  "INITIAL",
			Items: []models.MWatchItem{},
		},
	}

	s.engine.Use(gin.Recovery())
	if cfg.LogLevel == "DEBUG" {
		s.engine.Use(gin.Logger())
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	s.setupRoutes()

	go s.handleWebsockets()
	return s
}

// -----------------------------------------------------------------------------

// SetWatchlist attaches the refresher behind POST /api/watchlist/refresh.
func (s *APIServer) SetWatchlist(w interfaces.IWatchlist) {
	s.Watchlist = w
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/lookup", s.getLookup)
	api.GET("/table", s.getTable)
	api.GET("/watchlist", s.getWatchlist)
	api.POST("/watchlist/refresh", s.refreshWatchlist)
	api.GET("/lookups/recent", s.getRecentLookups)
	api.GET("/config", s.getConfig)
	api.GET("/health", s.getHealth)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mostly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start blocks until the server stops.
func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)
		if s.http != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err = s.http.Shutdown(ctx)
		}
	})
	return err
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) lookupContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(s.Config.Provider.TimeoutSeconds)*time.Second)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getLookup(c *gin.Context) {
	ticker := strings.TrimSpace(c.Query("ticker"))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker is required"})
		return
	}

	ctx, cancel := s.lookupContext(c)
	defer cancel()

	// Resolution failures are part of the payload, not an HTTP error.
	c.JSON(http.StatusOK, s.Lookups.Lookup(ctx, ticker))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getTable(c *gin.Context) {
	ticker := strings.TrimSpace(c.Query("ticker"))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker is required"})
		return
	}

	kind := analysis.ParseStatementKind(c.DefaultQuery("statement", string(models.StatementIncome)))
	if kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "statement must be income, balance or cashflow"})
		return
	}

	rows, err := queryInt(c, "rows", s.Config.Windows.MaxTableRows)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cols, err := queryInt(c, "cols", s.Config.Windows.MaxTableCols)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	transpose, err := queryBool(c, "transpose", s.Config.Windows.Transpose)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := s.lookupContext(c)
	defer cancel()

	table, err := s.Lookups.Table(ctx, ticker, kind, rows, cols, transpose)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": describeError(err)})
		return
	}
	c.JSON(http.StatusOK, table)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getWatchlist(c *gin.Context) {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, s.latestState)
}

// -----------------------------------------------------------------------------

func (s *APIServer) refreshWatchlist(c *gin.Context) {
	if s.Watchlist == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "watchlist disabled"})
		return
	}
	c.JSON(http.StatusOK, s.Watchlist.Refresh(c.Request.Context()))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getRecentLookups(c *gin.Context) {
	limit, err := queryInt(c, "limit", defaultRecentLimit)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	records := []models.MLookupRecord{}
	if s.DB != nil {
		found, err := s.DB.RecentLookups(limit)
		if err != nil {
			s.Logger.Error("Failed to read recent lookups: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup log unavailable"})
			return
		}
		records = append(records, found...)
	}
	c.JSON(http.StatusOK, records)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":      s.Config.Name,
		"provider":  s.Config.Provider.Name,
		"period":    s.Config.Provider.Period,
		"interval":  s.Config.Provider.Interval,
		"resolver":  s.Config.Resolver,
		"windows":   s.Config.Windows,
		"watchlist": s.Config.Watchlist.Symbols,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	timestamp := s.latestState.Timestamp
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   s.connections.Load(),
		"latest_update": timestamp,
	})
}
