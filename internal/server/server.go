package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/palemoky/super-rummy/internal/config"
	"github.com/palemoky/super-rummy/internal/game/lobby"
	"github.com/palemoky/super-rummy/internal/game/round"
	"github.com/palemoky/super-rummy/internal/server/handler"
	"github.com/palemoky/super-rummy/internal/server/storage"
)

// Server WebSocket 服务器
type Server struct {
	config    *config.Config
	redis     *redis.Client
	store     *storage.RedisStore
	lobbies   *lobby.Manager
	handler   *handler.Handler
	clients   map[string]*Client
	clientsMu sync.RWMutex

	upgrader      websocket.Upgrader
	originChecker *OriginChecker

	// 连接控制
	maxConnections int
	semaphore      chan struct{} // 信号量控制并发连接数

	// 维护模式
	maintenanceMode bool
	maintenanceMu   sync.RWMutex
}

// NewServer 连接 Redis 并创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	return New(cfg, rdb), nil
}

// New 使用已有的 Redis 客户端创建服务器
func New(cfg *config.Config, rdb *redis.Client) *Server {
	s := &Server{
		config:         cfg,
		redis:          rdb,
		store:          storage.NewRedisStore(rdb),
		clients:        make(map[string]*Client),
		originChecker:  NewOriginChecker(cfg.Server.AllowedOrigins),
		maxConnections: cfg.Server.MaxConnections,
		semaphore:      make(chan struct{}, cfg.Server.MaxConnections),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.originChecker.Check,
	}
	s.lobbies = lobby.NewManager(s.store, round.NewRegistry(), cfg.Game.MaxSeats, cfg.Game.LobbyTTLDuration())
	s.handler = handler.NewHandler(handler.HandlerDeps{
		Server:  s,
		Lobbies: s.lobbies,
	})

	log.Infof("🔒 来源限制=%v, 最大连接数=%d, 每个大厅最多 %d 个座位",
		cfg.Server.AllowedOrigins, cfg.Server.MaxConnections, cfg.Game.MaxSeats)
	return s
}

// Lobbies 大厅管理器
func (s *Server) Lobbies() *lobby.Manager {
	return s.lobbies
}

// Routes HTTP 路由
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/lobby", s.handleLobbyInfo)
	mux.HandleFunc("GET /api/lobbies", s.handleLobbyList)
	return mux
}

// Run 启动服务器，ctx 结束后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return s.lobbies.Run(ctx, s.config.Game.SnapshotIntervalDuration())
	})
	g.Go(func() error {
		s.monitorStats(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return s.GracefulShutdown(httpServer, drainTimeout)
	})

	err := g.Wait()
	s.lobbies.Wait()
	_ = s.redis.Close()
	log.Info("服务器已关闭")
	return err
}
