// Package handler 把解码后的客户端消息分发给大厅和对局
package handler

import (
	log "github.com/sirupsen/logrus"

	"github.com/palemoky/super-rummy/internal/game/lobby"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/protocol/codec"
	"github.com/palemoky/super-rummy/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server  types.ServerInterface
	Lobbies *lobby.Manager
}

// Handler 消息处理器
type Handler struct {
	server   types.ServerInterface
	lobbies  *lobby.Manager
	handlers map[protocol.ActionType]handlerFunc
}

// handlerFunc 统一的处理器函数签名，返回的错误回复给发送者
type handlerFunc func(client types.ClientInterface, action protocol.Action) error

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:  deps.Server,
		lobbies: deps.Lobbies,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.ActionType]handlerFunc{
		// 连接
		protocol.ActionPong: func(types.ClientInterface, protocol.Action) error { return nil },

		// 大厅操作
		protocol.ActionName:     handle(h.handleName),
		protocol.ActionAI:       handle(h.handleAI),
		protocol.ActionJoin:     handle(h.handleJoin),
		protocol.ActionSettings: handle(h.handleSettings),
		protocol.ActionStart:    func(c types.ClientInterface, _ protocol.Action) error { return h.handleStart(c) },

		// 对局操作
		protocol.ActionDraw:    handle(h.handleDraw),
		protocol.ActionMeld:    handle(h.handleMeld),
		protocol.ActionLay:     handle(h.handleLay),
		protocol.ActionDiscard: handle(h.handleDiscard),
	}
}

// handle 把具体类型的处理函数适配成 handlerFunc
func handle[T protocol.Action](fn func(types.ClientInterface, T) error) handlerFunc {
	return func(client types.ClientInterface, action protocol.Action) error {
		typed, ok := action.(T)
		if !ok {
			return protocol.ErrMalformedAction
		}
		return fn(client, typed)
	}
}

// Handle 处理消息，失败时只给发送者回复 error 事件
func (h *Handler) Handle(client types.ClientInterface, action protocol.Action) {
	handler, ok := h.handlers[action.Type()]
	if !ok {
		log.Warnf("⚠️ 未知消息类型: '%s' (来自玩家: %s, ID: %s)", action.Type(), client.GetName(), client.GetID())
		client.SendEvent(codec.NewErrorEvent(protocol.ErrMalformedAction))
		return
	}

	if err := handler(client, action); err != nil {
		log.WithField("lobby", client.GetLobby()).Debugf("操作 %s 被拒绝 (%s): %v", action.Type(), client.GetName(), err)
		client.SendEvent(codec.NewErrorEvent(err))
	}
}
