// Package lobby 大厅：连接在开局前聚在一起、调整规则、添加电脑玩家的地方
//
// 每个大厅一把锁，大厅操作和它的对局操作（包括随之而来的电脑回合）都在这把锁下串行执行。
package lobby

import (
	"slices"
	"sync"
	"time"

	"github.com/palemoky/super-rummy/internal/game/round"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/server/storage"
	"github.com/palemoky/super-rummy/internal/types"
)

// Member 大厅中的一个座位，Client 为 nil 表示电脑玩家
type Member struct {
	ID     string
	Name   string
	Client types.ClientInterface
}

// IsHuman 是否为真人
func (m *Member) IsHuman() bool {
	return m.Client != nil
}

// Lobby 游戏大厅
type Lobby struct {
	code      string
	manager   *Manager
	members   []*Member // 按加入顺序
	settings  protocol.GameSettings
	round     *round.Round
	createdAt time.Time
	closed    bool

	mu sync.Mutex
}

func newLobby(m *Manager, code string) *Lobby {
	return &Lobby{
		code:      code,
		manager:   m,
		settings:  protocol.DefaultSettings(),
		createdAt: time.Now(),
	}
}

// Code 大厅代码
func (l *Lobby) Code() string {
	return l.code
}

// IsConnected 该玩家是否仍在大厅中
func (l *Lobby) IsConnected(playerID string) bool {
	m := l.member(playerID)
	return m != nil && m.IsHuman()
}

// RoundEnded 对局结束：保存结算并重新通知大厅状态
//
// 由对局在大厅锁内回调，不能再加锁。
func (l *Lobby) RoundEnded(result round.Result) {
	l.round = nil
	l.manager.saveResult(&storage.ResultData{
		Code:       result.Code,
		WinnerID:   result.WinnerID,
		HandValues: result.HandValues,
		Names:      result.Names,
		EndedAt:    result.EndedAt.Unix(),
	})
	if !l.closed {
		l.informPlayers()
		l.manager.saveLobby(l.snapshot())
	}
}

// Players 大厅人数（真人 + 电脑）
func (l *Lobby) Players() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.members)
}

// Playing 是否有进行中的对局
func (l *Lobby) Playing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.round != nil
}

func (l *Lobby) member(id string) *Member {
	for _, m := range l.members {
		if m.ID == id {
			return m
		}
	}
	return nil
}

func (l *Lobby) humans() []*Member {
	humans := make([]*Member, 0, len(l.members))
	for _, m := range l.members {
		if m.IsHuman() {
			humans = append(humans, m)
		}
	}
	return humans
}

func (l *Lobby) removeMember(id string) {
	l.members = slices.DeleteFunc(l.members, func(m *Member) bool {
		return m.ID == id
	})
}

// informPlayers 给每位真人发送大厅状态，current_player_id 是接收者自己
func (l *Lobby) informPlayers() {
	players := make([]protocol.LobbyPlayer, len(l.members))
	for i, m := range l.members {
		players[i] = protocol.LobbyPlayer{Name: m.Name, ID: m.ID, Human: m.IsHuman()}
	}
	for _, m := range l.humans() {
		m.Client.SendEvent(&protocol.LobbyEvent{Lobby: protocol.ClientLobby{
			Players:         players,
			CurrentPlayerID: m.ID,
			Code:            l.code,
			Settings:        l.settings,
		}})
	}
}

// snapshot 转换为可序列化的 LobbyData
func (l *Lobby) snapshot() *storage.LobbyData {
	data := &storage.LobbyData{
		Code:      l.code,
		Players:   make([]storage.PlayerData, len(l.members)),
		Settings:  l.settings,
		Playing:   l.round != nil,
		CreatedAt: l.createdAt.Unix(),
		UpdatedAt: time.Now().Unix(),
	}
	for i, m := range l.members {
		data.Players[i] = storage.PlayerData{ID: m.ID, Name: m.Name, Human: m.IsHuman()}
	}
	return data
}

// seats 开局用的座位
func (l *Lobby) seats() []*round.Seat {
	seats := make([]*round.Seat, len(l.members))
	for i, m := range l.members {
		if m.IsHuman() {
			seats[i] = round.HumanSeat(m.Client)
		} else {
			seats[i] = round.AISeat(m.ID, m.Name)
		}
	}
	return seats
}
