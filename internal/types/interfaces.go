package types

import (
	"github.com/palemoky/super-rummy/internal/protocol"
)

// ClientInterface 连接能力：稳定的身份、显示名、所在大厅，以及尽力而为的事件推送
type ClientInterface interface {
	GetID() string
	GetName() string
	SetName(name string)
	GetLobby() string
	SetLobby(code string)
	// SendEvent 不得阻塞或 panic，发送失败由连接层自行处理
	SendEvent(event protocol.Event)
	Close()
}

// ServerInterface 定义服务器接口（用于打破循环依赖）
type ServerInterface interface {
	IsMaintenanceMode() bool
	GetOnlineCount() int
}
