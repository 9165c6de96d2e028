package server

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/super-rummy/internal/server/storage"
)

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	clientIP := GetClientIP(r)

	// 维护模式检查（最优先）
	if s.IsMaintenanceMode() {
		log.Infof("🔧 维护模式，拒绝新连接: %s", clientIP)
		http.Error(w, "Server is under maintenance, please try again later", http.StatusServiceUnavailable)
		return
	}

	// 连接数限制检查，连接断开时释放
	select {
	case s.semaphore <- struct{}{}:
	default:
		log.Warnf("🚫 达到最大连接数限制 (%d), IP: %s", s.maxConnections, clientIP)
		http.Error(w, "Server Full", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		<-s.semaphore
		log.Warnf("🚫 WebSocket 升级失败 (Origin: %s, IP: %s): %v", r.Header.Get("Origin"), clientIP, err)
		return
	}

	client := NewClient(s, conn)
	client.IP = clientIP
	s.registerClient(client)

	go client.WritePump()

	// 每个连接先进入只有自己的大厅
	if _, err := s.lobbies.Create(client); err != nil {
		log.Errorf("创建大厅失败: %v", err)
		s.unregisterClient(client)
		client.Close()
		<-s.semaphore
		return
	}

	log.Infof("✅ 玩家 %s (%s) 已连接", client.GetName(), client.ID)

	go func() {
		defer func() { <-s.semaphore }()
		client.ReadPump()
	}()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// LobbyInfo /api/lobby 的响应
type LobbyInfo struct {
	Lobby      *storage.LobbyData  `json:"lobby"`
	LastResult *storage.ResultData `json:"last_result,omitempty"`
}

// handleLobbyInfo 查询大厅快照和最近一局的结算
func (s *Server) handleLobbyInfo(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	data, err := s.store.LoadLobby(ctx, code)
	if err != nil {
		log.WithField("lobby", code).Errorf("读取大厅快照失败: %v", err)
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.Error(w, "lobby not found", http.StatusNotFound)
		return
	}

	info := LobbyInfo{Lobby: data}
	if info.LastResult, err = s.store.LoadResult(ctx, code); err != nil {
		log.WithField("lobby", code).Warnf("读取结算失败: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}

// handleLobbyList 列出 Redis 中所有大厅代码（包括其他服务进程的）
func (s *Server) handleLobbyList(w http.ResponseWriter, r *http.Request) {
	codes, err := s.store.GetAllLobbyCodes(r.Context())
	if err != nil {
		log.Errorf("读取大厅列表失败: %v", err)
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	if codes == nil {
		codes = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string][]string{"codes": codes})
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		log.Infof("❌ 玩家 %s (%s) 已断开", client.GetName(), client.ID)
	}
}
