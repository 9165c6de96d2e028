package lobby

import (
	"slices"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/super-rummy/internal/apperrors"
	"github.com/palemoky/super-rummy/internal/game/round"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/types"
)

// withIdleLobby 在所在大厅的锁内执行，要求大厅中没有进行中的对局；成功后通知大厅状态
func (m *Manager) withIdleLobby(client types.ClientInterface, fn func(l *Lobby) error) error {
	l := m.Get(client.GetLobby())
	if l == nil {
		return apperrors.ErrLobbyNotFound
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return apperrors.ErrLobbyNotFound
	}
	if l.round != nil {
		return apperrors.ErrGameStarted
	}
	if err := fn(l); err != nil {
		return err
	}
	l.informPlayers()
	m.saveLobby(l.snapshot())
	return nil
}

// Rename 改名
func (m *Manager) Rename(client types.ClientInterface, name string) error {
	name, err := NormalizeName(name)
	if err != nil {
		return err
	}
	return m.withIdleLobby(client, func(l *Lobby) error {
		client.SetName(name)
		if member := l.member(client.GetID()); member != nil {
			member.Name = name
		}
		return nil
	})
}

// AddAI 添加一个电脑玩家
func (m *Manager) AddAI(client types.ClientInterface) error {
	return m.withIdleLobby(client, func(l *Lobby) error {
		if len(l.members) >= m.maxSeats {
			return apperrors.ErrLobbyFull
		}
		id, name := newAIProfile()
		l.members = append(l.members, &Member{ID: id, Name: name})
		return nil
	})
}

// RemoveAI 移除最后加入的电脑玩家
func (m *Manager) RemoveAI(client types.ClientInterface) error {
	return m.withIdleLobby(client, func(l *Lobby) error {
		for i, member := range slices.Backward(l.members) {
			if !member.IsHuman() {
				l.members = slices.Delete(l.members, i, i+1)
				return nil
			}
		}
		return apperrors.ErrNoAIPlayer
	})
}

// UpdateSettings 修改规则（已通过解码校验）
func (m *Manager) UpdateSettings(client types.ClientInterface, settings protocol.GameSettings) error {
	return m.withIdleLobby(client, func(l *Lobby) error {
		l.settings = settings
		return nil
	})
}

// Start 开局，至少两个座位
func (m *Manager) Start(client types.ClientInterface) error {
	l := m.Get(client.GetLobby())
	if l == nil {
		return apperrors.ErrLobbyNotFound
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.closed:
		return apperrors.ErrLobbyNotFound
	case l.round != nil:
		return apperrors.ErrGameStarted
	case len(l.members) < 2:
		return apperrors.ErrNotEnoughPlayers
	}

	r := round.New(l, m.registry, l.settings, l.seats())
	l.round = r
	if err := r.Start(); err != nil {
		l.round = nil
		return err
	}
	log.WithField("lobby", l.code).Infof("🎲 %s 开局，%d 个座位", client.GetName(), len(l.members))
	if l.round != nil {
		m.saveLobby(l.snapshot())
	}
	return nil
}

// Play 在所在大厅的锁内对进行中的对局执行操作
func (m *Manager) Play(client types.ClientInterface, fn func(r *round.Round) error) error {
	l := m.Get(client.GetLobby())
	if l == nil {
		return apperrors.ErrGameNotStart
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.round == nil {
		return apperrors.ErrGameNotStart
	}
	return fn(l.round)
}
