package protocol

import "errors"

// ErrMalformedAction 无法解析的客户端消息（格式错误、未知类型、字段缺失）
var ErrMalformedAction = errors.New("malformed action")

// ErrMalformedEvent 无法解析的服务端消息
var ErrMalformedEvent = errors.New("malformed event")

// ActionType 客户端 → 服务端 消息类型
type ActionType string

const (
	ActionPong     ActionType = "pong"     // 心跳回应
	ActionName     ActionType = "name"     // 改名
	ActionAI       ActionType = "ai"       // 添加/移除电脑玩家
	ActionJoin     ActionType = "join"     // 加入大厅
	ActionStart    ActionType = "start"    // 开局
	ActionDraw     ActionType = "draw"     // 摸牌
	ActionMeld     ActionType = "meld"     // 亮出一组牌
	ActionLay      ActionType = "lay"      // 往桌上已有的牌组上接牌
	ActionDiscard  ActionType = "discard"  // 弃牌
	ActionSettings ActionType = "settings" // 修改规则
)

// EventType 服务端 → 客户端 消息类型
type EventType string

const (
	EventPing   EventType = "ping"   // 心跳
	EventLobby  EventType = "lobby"  // 大厅状态
	EventStart  EventType = "start"  // 开局
	EventTurn   EventType = "turn"   // 回合状态
	EventMove   EventType = "move"   // 牌的移动
	EventRedeck EventType = "redeck" // 重新组牌
	EventEnd    EventType = "end"    // 本局结束
	EventError  EventType = "error"  // 错误（仅发给出错的连接）
)

// Action 客户端消息，按 Type 区分具体类型
type Action interface {
	Type() ActionType
}

// Event 服务端消息，按 Type 区分具体类型
type Event interface {
	Type() EventType
}

// Validator 解码后需要额外校验的消息
type Validator interface {
	Validate() error
}

// NewAction 按类型创建空的 Action，未知类型返回 nil
func NewAction(t ActionType) Action {
	switch t {
	case ActionPong:
		return &PongAction{}
	case ActionName:
		return &NameAction{}
	case ActionAI:
		return &AIAction{}
	case ActionJoin:
		return &JoinAction{}
	case ActionStart:
		return &StartAction{}
	case ActionDraw:
		return &DrawAction{}
	case ActionMeld:
		return &MeldAction{}
	case ActionLay:
		return &LayAction{}
	case ActionDiscard:
		return &DiscardAction{}
	case ActionSettings:
		return &SettingsAction{}
	}
	return nil
}

// NewEvent 按类型创建空的 Event，未知类型返回 nil
func NewEvent(t EventType) Event {
	switch t {
	case EventPing:
		return &PingEvent{}
	case EventLobby:
		return &LobbyEvent{}
	case EventStart:
		return &StartEvent{}
	case EventTurn:
		return &TurnEvent{}
	case EventMove:
		return &MoveEvent{}
	case EventRedeck:
		return &RedeckEvent{}
	case EventEnd:
		return &EndEvent{}
	case EventError:
		return &ErrorEvent{}
	}
	return nil
}
