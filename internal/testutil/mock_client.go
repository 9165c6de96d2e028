//go:build !production

package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/super-rummy/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetName(name string) {
	m.Called(name)
}

func (m *MockClient) GetLobby() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetLobby(code string) {
	m.Called(code)
}

func (m *MockClient) SendEvent(event protocol.Event) {
	m.Called(event)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，不使用 testify，记录收到的所有事件
type SimpleClient struct {
	ID        string
	Name      string
	LobbyCode string
	Closed    bool

	mu     sync.Mutex
	events []protocol.Event
}

// NewSimpleClient 创建一个记录事件的客户端
func NewSimpleClient(id, name string) *SimpleClient {
	return &SimpleClient{ID: id, Name: name}
}

func (m *SimpleClient) GetID() string        { return m.ID }
func (m *SimpleClient) GetName() string      { return m.Name }
func (m *SimpleClient) SetName(name string)  { m.Name = name }
func (m *SimpleClient) GetLobby() string     { return m.LobbyCode }
func (m *SimpleClient) SetLobby(code string) { m.LobbyCode = code }
func (m *SimpleClient) Close()               { m.Closed = true }

func (m *SimpleClient) SendEvent(event protocol.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events 收到的全部事件（副本）
func (m *SimpleClient) Events() []protocol.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]protocol.Event(nil), m.events...)
}

// Reset 清空已记录的事件
func (m *SimpleClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

// LastEvent 最后一个事件，没有则返回 nil
func (m *SimpleClient) LastEvent() protocol.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == 0 {
		return nil
	}
	return m.events[len(m.events)-1]
}

// EventsOf 按类型筛选收到的事件
func EventsOf[T protocol.Event](c *SimpleClient) []T {
	var out []T
	for _, ev := range c.Events() {
		if typed, ok := ev.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
