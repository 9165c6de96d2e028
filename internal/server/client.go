package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/palemoky/super-rummy/internal/game/lobby"
	"github.com/palemoky/super-rummy/internal/logger"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/protocol/codec"
)

const (
	// 写入超时
	writeWait = 10 * time.Second

	// 读取超时：这段时间内没有收到任何消息（包括 pong）就断开
	pongWait = 60 * time.Second

	// ping 发送间隔（必须小于 pongWait）
	pingPeriod = (pongWait * 9) / 10

	// 消息最大大小
	maxMessageSize = 4096

	sendBufferSize = 256
)

// Client 代表一个连接的玩家
type Client struct {
	ID   string // 玩家唯一 ID
	IP   string // 客户端 IP 地址
	name string
	code string // 当前所在大厅

	server *Server
	conn   *websocket.Conn
	send   chan []byte

	mu     sync.RWMutex
	closed bool
}

// NewClient 创建新客户端，随机分配昵称
func NewClient(s *Server, conn *websocket.Conn) *Client {
	return &Client{
		ID:     uuid.New().String(),
		name:   lobby.GenerateNickname(),
		server: s,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

func (c *Client) GetID() string {
	return c.ID
}

func (c *Client) GetName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Client) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = name
}

func (c *Client) GetLobby() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.code
}

func (c *Client) SetLobby(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code = code
}

// ReadPump 从 WebSocket 读取消息
//
// 无法解析的消息直接断开连接；处理过程中的 panic 同样断开连接。
func (c *Client) ReadPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.handleDisconnect()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warnf("读取错误: %v", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		action, err := codec.DecodeAction(message)
		if err != nil {
			log.WithField("client", c.ID).Warnf("🚫 消息解析错误，断开连接: %v", err)
			return
		}

		c.server.handler.Handle(c, action)
	}
}

// WritePump 向 WebSocket 写入消息，并定期发送 ping 事件
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	ping := codec.MustEncodeEvent(&protocol.PingEvent{})
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return
			}
		}
	}
}

// SendEvent 发送事件给客户端，缓冲区满时断开连接
func (c *Client) SendEvent(event protocol.Event) {
	data, err := codec.EncodeEvent(event)
	if err != nil {
		log.Errorf("消息编码错误: %v", err)
		return
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		log.Warnf("客户端 %s 发送缓冲区已满", c.ID)
		go c.Close()
	}
}

// handleDisconnect 离开大厅并注销连接
func (c *Client) handleDisconnect() {
	c.server.lobbies.Leave(c)
	c.server.unregisterClient(c)
	c.Close()
}

// Close 关闭发送通道，写协程随后关闭连接
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}
