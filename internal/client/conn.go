// Package client is the terminal-side connection and table mirror.
package client

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/palemoky/super-rummy/internal/logger"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/protocol/codec"
)

const (
	writeWait = 10 * time.Second
	// the server pings every ~54s
	readWait = 90 * time.Second

	bufferSize = 256
)

// ErrClosed is returned by Send after Close
var ErrClosed = errors.New("connection closed")

// Conn is a WebSocket connection to the server.
// Pings are answered automatically; every other event is delivered on Receive.
type Conn struct {
	conn    *websocket.Conn
	send    chan []byte
	receive chan protocol.Event
	done    chan struct{}

	mu     sync.Mutex
	closed bool
}

// Dial connects to a ws:// URL
func Dial(url string) (*Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	ws, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		conn:    ws,
		send:    make(chan []byte, bufferSize),
		receive: make(chan protocol.Event, bufferSize),
		done:    make(chan struct{}),
	}
	go c.readPump()
	go c.writePump()
	return c, nil
}

// Receive delivers server events; closed when the connection ends
func (c *Conn) Receive() <-chan protocol.Event {
	return c.receive
}

// Send queues an action for the server
func (c *Conn) Send(action protocol.Action) error {
	data, err := codec.EncodeAction(action)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return errors.New("send buffer full")
	}
}

// Close shuts the connection down
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.done)
	}
}

func (c *Conn) readPump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		c.Close()
		close(c.receive)
	}()

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(readWait))
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("read error: %v", err)
			}
			return
		}

		event, err := codec.DecodeEvent(data)
		if err != nil {
			log.Warnf("消息解析错误: %v", err)
			continue
		}
		if _, ok := event.(*protocol.PingEvent); ok {
			_ = c.Send(&protocol.PongAction{})
			continue
		}

		select {
		case c.receive <- event:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) writePump() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
		}
		_ = c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
