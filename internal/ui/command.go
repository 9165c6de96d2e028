package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/super-rummy/internal/client"
	"github.com/palemoky/super-rummy/internal/protocol"
)

// errQuit 用户输入 quit
var errQuit = errors.New("quit")

// helpText 命令行帮助
const helpText = `name <名字>            改名
join <代码>            加入大厅
ai add | ai remove     添加/移除电脑玩家
set <规则> <值>        修改规则，例如 set hand_size 10
start                  开局
draw deck | discard    摸牌
meld 1 2 3             用手牌第 1、2、3 张亮牌
lay <组号> 1 2         把手牌接到第 <组号> 组上
discard 4              弃掉手牌第 4 张
quit                   退出`

// ParseCommand 把一行输入转换成发给服务器的消息，手牌和牌组编号从 1 开始
func ParseCommand(line string, board *client.Board) (protocol.Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("请输入命令，help 查看帮助")
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return nil, errQuit
	case "name":
		if len(args) == 0 {
			return nil, errors.New("用法: name <名字>")
		}
		return &protocol.NameAction{Name: strings.Join(args, " ")}, nil
	case "join":
		if len(args) != 1 {
			return nil, errors.New("用法: join <代码>")
		}
		return &protocol.JoinAction{Code: args[0]}, nil
	case "ai":
		if len(args) != 1 || (args[0] != protocol.AIAdd && args[0] != protocol.AIRemove) {
			return nil, errors.New("用法: ai add | ai remove")
		}
		return &protocol.AIAction{Action: args[0]}, nil
	case "start":
		return &protocol.StartAction{}, nil
	case "set":
		if len(args) != 2 {
			return nil, errors.New("用法: set <规则> <值>")
		}
		settings, err := applySetting(board.Lobby.Settings, args[0], args[1])
		if err != nil {
			return nil, err
		}
		return &protocol.SettingsAction{Settings: settings}, nil
	case "draw":
		return parseDraw(args, board)
	case "meld":
		ids, err := handIDs(args, board)
		if err != nil {
			return nil, err
		}
		return &protocol.MeldAction{CardIDs: ids}, nil
	case "lay":
		if len(args) < 2 {
			return nil, errors.New("用法: lay <组号> 1 2")
		}
		meld, err := strconv.Atoi(args[0])
		if err != nil || meld < 1 || meld > len(board.Melds) {
			return nil, fmt.Errorf("没有第 %s 组牌", args[0])
		}
		ids, err := handIDs(args[1:], board)
		if err != nil {
			return nil, err
		}
		return &protocol.LayAction{CardIDs: ids, MeldNumber: meld - 1}, nil
	case "discard":
		if len(args) != 1 {
			return nil, errors.New("用法: discard <编号>")
		}
		ids, err := handIDs(args, board)
		if err != nil {
			return nil, err
		}
		return &protocol.DiscardAction{CardID: ids[0]}, nil
	}
	return nil, fmt.Errorf("未知命令 %q，help 查看帮助", cmd)
}

func parseDraw(args []string, board *client.Board) (protocol.Action, error) {
	if len(args) != 1 {
		return nil, errors.New("用法: draw deck | draw discard")
	}
	switch args[0] {
	case "deck":
		if id := board.DeckTop(); id != "" {
			return &protocol.DrawAction{CardID: id}, nil
		}
		return nil, errors.New("牌堆是空的")
	case "discard":
		if top, ok := board.DiscardTop(); ok {
			return &protocol.DrawAction{CardID: top.ID}, nil
		}
		return nil, errors.New("弃牌堆是空的")
	}
	return nil, errors.New("用法: draw deck | draw discard")
}

func handIDs(args []string, board *client.Board) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("请指定手牌编号")
	}
	indexes := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("无效的编号 %q", arg)
		}
		indexes[i] = n
	}
	return board.HandCardIDs(indexes)
}

// applySetting 修改一项规则，值按 JSON 解析（不是合法 JSON 时当作字符串），再走完整校验
func applySetting(current protocol.GameSettings, field, value string) (protocol.GameSettings, error) {
	data, err := json.Marshal(current)
	if err != nil {
		return current, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return current, err
	}
	if _, ok := fields[field]; !ok {
		return current, fmt.Errorf("没有规则 %q", field)
	}

	raw := json.RawMessage(value)
	if !json.Valid(raw) {
		raw, _ = json.Marshal(value)
	}
	fields[field] = raw

	data, err = json.Marshal(fields)
	if err != nil {
		return current, err
	}
	var updated protocol.GameSettings
	if err := json.Unmarshal(data, &updated); err != nil {
		return current, err
	}
	return updated, nil
}
