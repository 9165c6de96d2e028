package lobby

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/super-rummy/internal/apperrors"
	"github.com/palemoky/super-rummy/internal/game/round"
	"github.com/palemoky/super-rummy/internal/server/storage"
	"github.com/palemoky/super-rummy/internal/types"
)

const (
	codeDigits      = 6
	maxCodeAttempts = 100
	storeTimeout    = 3 * time.Second
)

// Store 大厅用到的持久化能力
type Store interface {
	ReserveCode(ctx context.Context, code string, ttl time.Duration) (bool, error)
	RefreshCode(ctx context.Context, code string, ttl time.Duration) error
	ReleaseCode(ctx context.Context, code string) error
	SaveLobby(ctx context.Context, data *storage.LobbyData) error
	DeleteLobby(ctx context.Context, code string) error
	SaveResult(ctx context.Context, data *storage.ResultData) error
}

// Manager 大厅管理器
type Manager struct {
	store    Store
	registry *round.Registry
	maxSeats int
	codeTTL  time.Duration

	lobbies map[string]*Lobby
	mu      sync.RWMutex

	pending  sync.WaitGroup // 异步写存储
	queue    []func(ctx context.Context) error
	queueMu  sync.Mutex
	draining bool
}

// NewManager 创建大厅管理器
func NewManager(store Store, registry *round.Registry, maxSeats int, codeTTL time.Duration) *Manager {
	return &Manager{
		store:    store,
		registry: registry,
		maxSeats: maxSeats,
		codeTTL:  codeTTL,
		lobbies:  make(map[string]*Lobby),
	}
}

// Registry 进行中的对局
func (m *Manager) Registry() *round.Registry {
	return m.registry
}

// Create 新连接进入一个只有自己的新大厅
func (m *Manager) Create(client types.ClientInterface) (*Lobby, error) {
	code, err := m.reserveCode()
	if err != nil {
		return nil, err
	}

	l := newLobby(m, code)
	l.mu.Lock()
	defer l.mu.Unlock()

	m.mu.Lock()
	m.lobbies[code] = l
	m.mu.Unlock()

	l.members = append(l.members, &Member{ID: client.GetID(), Name: client.GetName(), Client: client})
	client.SetLobby(code)
	l.informPlayers()
	m.saveLobby(l.snapshot())

	log.WithField("lobby", code).Infof("🏠 大厅已创建，玩家 %s", client.GetName())
	return l, nil
}

// Join 加入另一个大厅，原大厅按离开处理
func (m *Manager) Join(client types.ClientInterface, code string) error {
	previous := client.GetLobby()
	if previous == code {
		return nil
	}
	if old := m.Get(previous); old != nil && old.Playing() {
		return apperrors.ErrGameStarted
	}

	target := m.Get(code)
	if target == nil {
		return apperrors.ErrLobbyNotFound
	}

	target.mu.Lock()
	switch {
	case target.closed:
		target.mu.Unlock()
		return apperrors.ErrLobbyNotFound
	case target.round != nil:
		target.mu.Unlock()
		return apperrors.ErrGameStarted
	case len(target.members) >= m.maxSeats:
		target.mu.Unlock()
		return apperrors.ErrLobbyFull
	}
	target.members = append(target.members, &Member{ID: client.GetID(), Name: client.GetName(), Client: client})
	client.SetLobby(code)
	target.informPlayers()
	m.saveLobby(target.snapshot())
	target.mu.Unlock()

	log.WithField("lobby", code).Infof("👤 玩家 %s 加入大厅", client.GetName())

	m.leave(client.GetID(), previous)
	return nil
}

// Leave 连接断开：离开所在大厅，大厅没有真人时解散
func (m *Manager) Leave(client types.ClientInterface) {
	code := client.GetLobby()
	client.SetLobby("")
	m.leave(client.GetID(), code)
}

func (m *Manager) leave(playerID, code string) {
	l := m.Get(code)
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.member(playerID) == nil {
		return
	}
	l.removeMember(playerID)
	l.closed = len(l.humans()) == 0
	logger := log.WithField("lobby", code)
	logger.Infof("👋 玩家 %s 离开大厅", playerID)

	if l.round != nil {
		l.round.RemovePlayer(playerID)
	}
	if l.round != nil && l.closed {
		l.round.Abandon()
	}

	if l.closed {
		m.mu.Lock()
		delete(m.lobbies, code)
		m.mu.Unlock()
		m.async(func(ctx context.Context) error {
			return errors.Join(m.store.ReleaseCode(ctx, code), m.store.DeleteLobby(ctx, code))
		})
		logger.Info("🏠 大厅已解散")
		return
	}

	l.informPlayers()
	m.saveLobby(l.snapshot())
}

// Get 获取大厅
func (m *Manager) Get(code string) *Lobby {
	if code == "" {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lobbies[code]
}

// Count 大厅数
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lobbies)
}

// ActiveRounds 进行中的对局数
func (m *Manager) ActiveRounds() int {
	return m.registry.Count()
}

// all 所有大厅的快照列表，调用方逐个加锁
func (m *Manager) all() []*Lobby {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lobbies := make([]*Lobby, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		lobbies = append(lobbies, l)
	}
	return lobbies
}

// reserveCode 生成 6 位数字代码，本进程内和 Redis 中都不能重复
//
// Redis 不可用时只保证本进程内唯一。
func (m *Manager) reserveCode() (string, error) {
	for range maxCodeAttempts {
		code := fmt.Sprintf("%0*d", codeDigits, rand.IntN(1_000_000))
		if m.Get(code) != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		ok, err := m.store.ReserveCode(ctx, code, m.codeTTL)
		cancel()
		if err != nil {
			log.WithError(err).Warn("⚠️ 大厅代码占用失败，仅在本进程内去重")
			ok = true
		}
		if ok {
			return code, nil
		}
	}
	return "", fmt.Errorf("no free lobby code after %d attempts", maxCodeAttempts)
}

// async 在后台按提交顺序写存储，失败只记日志
//
// 同一时刻最多一个协程消费队列，快照不会覆盖在删除之后。
func (m *Manager) async(fn func(ctx context.Context) error) {
	m.queueMu.Lock()
	m.queue = append(m.queue, fn)
	start := !m.draining
	m.draining = true
	m.queueMu.Unlock()

	if start {
		m.pending.Go(m.drain)
	}
}

func (m *Manager) drain() {
	for {
		m.queueMu.Lock()
		if len(m.queue) == 0 {
			m.draining = false
			m.queueMu.Unlock()
			return
		}
		fn := m.queue[0]
		m.queue = m.queue[1:]
		m.queueMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		if err := fn(ctx); err != nil {
			log.WithError(err).Warn("⚠️ 写入存储失败")
		}
		cancel()
	}
}

func (m *Manager) saveLobby(data *storage.LobbyData) {
	m.async(func(ctx context.Context) error { return m.store.SaveLobby(ctx, data) })
}

func (m *Manager) saveResult(data *storage.ResultData) {
	m.async(func(ctx context.Context) error { return m.store.SaveResult(ctx, data) })
}

// Wait 等待所有后台写入完成
func (m *Manager) Wait() {
	m.pending.Wait()
}
