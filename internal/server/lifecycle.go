package server

import (
	"context"
	"net/http"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/super-rummy/internal/apperrors"
	"github.com/palemoky/super-rummy/internal/protocol/codec"
)

const (
	monitorInterval    = 30 * time.Second
	drainTimeout       = 30 * time.Second
	drainCheckInterval = time.Second
)

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats(ctx context.Context) {
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			log.Infof("📊 [监控] 在线: %d | 大厅: %d | 对局: %d | Goroutines: %d | 活跃连接: %d/%d | 内存: %.2f MB",
				s.GetOnlineCount(),
				s.lobbies.Count(),
				s.lobbies.ActiveRounds(),
				runtime.NumGoroutine(),
				len(s.semaphore),
				s.maxConnections,
				float64(m.Alloc)/1024/1024)
		}
	}
}

// EnterMaintenanceMode 进入维护模式：拒绝新连接和开局
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	s.Broadcast(codec.NewErrorEvent(apperrors.ErrMaintenance))
	log.Info("🔧 进入维护模式：停止新连接和开局")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown 等待进行中的对局结束（最多 timeout），然后关闭 HTTP 服务和所有连接
func (s *Server) GracefulShutdown(httpServer *http.Server, timeout time.Duration) error {
	s.EnterMaintenanceMode()

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(drainCheckInterval)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		active := s.lobbies.ActiveRounds()
		if active == 0 {
			log.Info("✅ 所有对局已结束")
			break
		}
		log.Infof("⏳ 等待 %d 个对局结束...", active)
		<-ticker.C
	}
	if active := s.lobbies.ActiveRounds(); active > 0 {
		log.Warnf("⚠️ 超时，仍有 %d 个对局进行中，强制关闭", active)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := httpServer.Shutdown(ctx)

	s.closeClients()
	return err
}

// closeClients 关闭所有客户端连接
func (s *Server) closeClients() {
	s.clientsMu.RLock()
	clients := make([]*Client, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, client)
	}
	s.clientsMu.RUnlock()

	for _, client := range clients {
		client.Close()
	}
}
