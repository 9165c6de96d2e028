package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/palemoky/super-rummy/internal/game/card"
)

// --- 客户端请求 ---

// PongAction 心跳回应
type PongAction struct{}

// NameAction 改名
type NameAction struct {
	Name string `json:"name"`
}

// AIAction 添加/移除电脑玩家
type AIAction struct {
	Action string `json:"action"` // add/remove
}

const (
	AIAdd    = "add"
	AIRemove = "remove"
)

// JoinAction 加入大厅
type JoinAction struct {
	Code string `json:"code"`
}

// StartAction 开局
type StartAction struct{}

// DrawAction 摸牌：牌堆顶或弃牌堆顶的牌 ID
type DrawAction struct {
	CardID string `json:"card_id"`
}

// MeldAction 亮出一组牌
type MeldAction struct {
	CardIDs []string `json:"card_ids"`
}

// LayAction 把牌接到第 MeldNumber 组牌上
type LayAction struct {
	CardIDs    []string `json:"card_ids"`
	MeldNumber int      `json:"meld_number"`
}

// DiscardAction 弃牌
type DiscardAction struct {
	CardID string `json:"card_id"`
}

// SettingsAction 修改规则
type SettingsAction struct {
	Settings GameSettings `json:"settings"`
}

func (PongAction) Type() ActionType     { return ActionPong }
func (NameAction) Type() ActionType     { return ActionName }
func (AIAction) Type() ActionType       { return ActionAI }
func (JoinAction) Type() ActionType     { return ActionJoin }
func (StartAction) Type() ActionType    { return ActionStart }
func (DrawAction) Type() ActionType     { return ActionDraw }
func (MeldAction) Type() ActionType     { return ActionMeld }
func (LayAction) Type() ActionType      { return ActionLay }
func (DiscardAction) Type() ActionType  { return ActionDiscard }
func (SettingsAction) Type() ActionType { return ActionSettings }

// Validate 只接受 add/remove
func (a AIAction) Validate() error {
	if a.Action != AIAdd && a.Action != AIRemove {
		return fmt.Errorf("invalid ai action %q", a.Action)
	}
	return nil
}

// RequiredFields 各类消息的必填字段
var RequiredFields = map[ActionType][]string{
	ActionName:     {"name"},
	ActionAI:       {"action"},
	ActionJoin:     {"code"},
	ActionDraw:     {"card_id"},
	ActionMeld:     {"card_ids"},
	ActionLay:      {"card_ids", "meld_number"},
	ActionDiscard:  {"card_id"},
	ActionSettings: {"settings"},
}

// --- 服务端推送 ---

// ClientCard 客户端看到的一张牌，Face 为 nil 表示背面朝上
type ClientCard struct {
	ID   string     `json:"id"`
	Face *card.Face `json:"face"`
}

// NewClientCard 按可见性生成客户端视角的牌
func NewClientCard(c *card.Card, revealed bool) ClientCard {
	cc := ClientCard{ID: c.ID}
	if revealed {
		face := c.Face
		cc.Face = &face
	}
	return cc
}

// ClientPlayer 开局时的玩家信息
type ClientPlayer struct {
	Name  string       `json:"name"`
	ID    string       `json:"id"`
	Hand  []ClientCard `json:"hand"`
	Human bool         `json:"human"`
}

// LobbyPlayer 大厅中的玩家信息
type LobbyPlayer struct {
	Name  string `json:"name"`
	ID    string `json:"id"`
	Human bool   `json:"human"`
}

// ClientLobby 大厅状态（每个连接收到的 CurrentPlayerID 不同）
type ClientLobby struct {
	Players         []LobbyPlayer `json:"players"`
	CurrentPlayerID string        `json:"current_player_id"`
	Code            string        `json:"code"`
	Settings        GameSettings  `json:"settings"`
}

// TurnState 回合阶段
type TurnState string

const (
	TurnDraw TurnState = "draw" // 等待摸牌
	TurnPlay TurnState = "play" // 已摸牌，可以亮牌/接牌，最后弃牌
)

// DestinationType 移动目标类型
type DestinationType string

const (
	DestPlayer  DestinationType = "player"
	DestMeld    DestinationType = "meld"
	DestDiscard DestinationType = "discard"
)

// MoveDestination 牌移动的目标位置
type MoveDestination struct {
	Type       DestinationType `json:"type"`
	PlayerID   string          `json:"player_id,omitempty"`
	MeldNumber int             `json:"meld_number"`
	Position   int             `json:"position"`
}

// ToPlayer 移入某位玩家手牌的 position 处
func ToPlayer(playerID string, position int) MoveDestination {
	return MoveDestination{Type: DestPlayer, PlayerID: playerID, Position: position}
}

// ToMeld 移入第 meldNumber 组牌的 position 处
func ToMeld(meldNumber, position int) MoveDestination {
	return MoveDestination{Type: DestMeld, MeldNumber: meldNumber, Position: position}
}

// ToDiscard 移入弃牌堆
func ToDiscard() MoveDestination {
	return MoveDestination{Type: DestDiscard}
}

// MarshalJSON 按目标类型只输出对应字段
func (d MoveDestination) MarshalJSON() ([]byte, error) {
	switch d.Type {
	case DestPlayer:
		return json.Marshal(struct {
			Type     DestinationType `json:"type"`
			PlayerID string          `json:"player_id"`
			Position int             `json:"position"`
		}{d.Type, d.PlayerID, d.Position})
	case DestMeld:
		return json.Marshal(struct {
			Type       DestinationType `json:"type"`
			MeldNumber int             `json:"meld_number"`
			Position   int             `json:"position"`
		}{d.Type, d.MeldNumber, d.Position})
	default:
		return json.Marshal(struct {
			Type DestinationType `json:"type"`
		}{d.Type})
	}
}

// PingEvent 心跳，客户端应立即回复 pong
type PingEvent struct{}

// LobbyEvent 大厅状态更新
type LobbyEvent struct {
	Lobby ClientLobby `json:"lobby"`
}

// StartEvent 开局：手牌为空、没有牌组、牌堆按 CardIDs 的顺序背面朝上（最后一张为顶）
type StartEvent struct {
	Players         []ClientPlayer `json:"players"`
	CurrentPlayerID string         `json:"current_player_id"`
	CardIDs         []string       `json:"card_ids"`
	GameCode        string         `json:"game_code"`
	Settings        GameSettings   `json:"settings"`
}

// TurnEvent 回合状态更新
type TurnEvent struct {
	PlayerID string    `json:"player_id"`
	State    TurnState `json:"state"`
}

// MoveEvent 牌的移动，Face 非空表示正面朝上
type MoveEvent struct {
	Cards       []ClientCard    `json:"cards"`
	Destination MoveDestination `json:"destination"`
}

// RedeckEvent 弃牌堆重新组成牌堆，旧牌全部作废，牌堆换成新的 ID
type RedeckEvent struct {
	NewCardIDs []string `json:"new_card_ids"`
}

// EndEvent 本局结束，WinnerID 为 nil 表示无人获胜
type EndEvent struct {
	WinnerID   *string        `json:"winner_id"`
	HandValues map[string]int `json:"hand_values"`
}

// ErrorEvent 操作被拒绝
type ErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (PingEvent) Type() EventType   { return EventPing }
func (LobbyEvent) Type() EventType  { return EventLobby }
func (StartEvent) Type() EventType  { return EventStart }
func (TurnEvent) Type() EventType   { return EventTurn }
func (MoveEvent) Type() EventType   { return EventMove }
func (RedeckEvent) Type() EventType { return EventRedeck }
func (EndEvent) Type() EventType    { return EventEnd }
func (ErrorEvent) Type() EventType  { return EventError }
