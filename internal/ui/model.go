// Package ui is the terminal client built on bubbletea.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/super-rummy/internal/client"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/sound"
)

type (
	connectedMsg    struct{ conn *client.Conn }
	eventMsg        struct{ event protocol.Event }
	disconnectedMsg struct{}
	errMsg          struct{ err error }
)

// Model 终端客户端的主模型
type Model struct {
	url   string
	conn  *client.Conn
	board *client.Board

	input textinput.Model
	sound *sound.SoundManager

	status      string
	statusError bool
	connected   bool
	quitting    bool

	width  int
	height int
}

// NewModel 创建连接到 url 的模型，连接在 Init 中建立
func NewModel(url string) *Model {
	ti := textinput.New()
	ti.Placeholder = "输入命令，help 查看帮助"
	ti.CharLimit = 80
	ti.Width = 50
	ti.Focus()

	return &Model{
		url:    url,
		board:  client.NewBoard(),
		input:  ti,
		sound:  sound.NewSoundManager(),
		status: "正在连接服务器...",
	}
}

func (m *Model) Init() tea.Cmd {
	go func() {
		_ = m.sound.Init()
	}()

	return tea.Batch(m.connect(), textinput.Blink)
}

func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		conn, err := client.Dial(m.url)
		if err != nil {
			return errMsg{err: fmt.Errorf("无法连接服务器: %w", err)}
		}
		return connectedMsg{conn: conn}
	}
}

// listen 等待下一条服务器事件
func (m *Model) listen() tea.Cmd {
	conn := m.conn
	return func() tea.Msg {
		ev, ok := <-conn.Receive()
		if !ok {
			return disconnectedMsg{}
		}
		return eventMsg{event: ev}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, m.quit()
		case tea.KeyEnter:
			return m, m.submit()
		}

	case connectedMsg:
		m.conn = msg.conn
		m.connected = true
		m.setStatus("已连接，help 查看帮助", false)
		return m, m.listen()

	case eventMsg:
		m.handleEvent(msg.event)
		return m, m.listen()

	case disconnectedMsg:
		m.connected = false
		m.setStatus("与服务器的连接已断开，按 Esc 退出", true)
		return m, nil

	case errMsg:
		m.setStatus(msg.err.Error(), true)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit 处理回车提交的一行命令
func (m *Model) submit() tea.Cmd {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return nil
	}
	if line == "help" {
		m.setStatus(helpText, false)
		return nil
	}

	action, err := ParseCommand(line, m.board)
	if errors.Is(err, errQuit) {
		return m.quit()
	}
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}
	if !m.connected {
		m.setStatus("尚未连接服务器", true)
		return nil
	}
	if err := m.conn.Send(action); err != nil {
		m.setStatus(fmt.Sprintf("发送失败: %v", err), true)
		return nil
	}
	m.setStatus("", false)
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if m.conn != nil {
		m.conn.Close()
	}
	m.sound.Close()
	return tea.Quit
}

// handleEvent 更新牌桌镜像，并在关键时刻播放提示音
func (m *Model) handleEvent(ev protocol.Event) {
	wasMyTurn := m.board.IsMyTurn() && m.board.Turn.State == protocol.TurnDraw

	if err := m.board.Apply(ev); err != nil {
		m.setStatus(err.Error(), true)
		return
	}

	switch ev := ev.(type) {
	case *protocol.StartEvent:
		m.setStatus("🎮 开局！", false)
	case *protocol.TurnEvent:
		if !wasMyTurn && m.board.IsMyTurn() && ev.State == protocol.TurnDraw {
			m.sound.Play(sound.CueTurn)
		}
	case *protocol.RedeckEvent:
		m.setStatus("🔄 弃牌堆重新洗成牌堆", false)
	case *protocol.EndEvent:
		if ev.WinnerID != nil && *ev.WinnerID == m.board.PlayerID {
			m.sound.Play(sound.CueWin)
		} else {
			m.sound.Play(sound.CueLose)
		}
		m.setStatus("本局结束，start 再来一局", false)
	case *protocol.ErrorEvent:
		m.sound.Play(sound.CueError)
		m.setStatus(ev.Message, true)
	}
}

func (m *Model) setStatus(status string, isError bool) {
	m.status = status
	m.statusError = isError
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	switch {
	case !m.connected && m.board.PlayerID == "":
		sb.WriteString(TitleStyle.Render("🃏 Super Rummy"))
	case m.board.Playing:
		sb.WriteString(TableView(m.board))
	default:
		sb.WriteString(LobbyView(m.board))
	}
	sb.WriteString("\n\n")

	if m.status != "" {
		if m.statusError {
			sb.WriteString(ErrorStyle.Render(m.status))
		} else {
			sb.WriteString(StatusStyle.Render(m.status))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(m.input.View())

	return DocStyle.Render(sb.String())
}
