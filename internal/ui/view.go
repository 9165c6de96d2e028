package ui

import (
	"fmt"
	"strings"

	"github.com/palemoky/super-rummy/internal/client"
	"github.com/palemoky/super-rummy/internal/protocol"
)

// LobbyView 大厅：玩家列表和当前规则
func LobbyView(b *client.Board) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("🏠 大厅 %s", b.Lobby.Code)))
	sb.WriteString("\n\n")

	var players strings.Builder
	for _, p := range b.Lobby.Players {
		icon := "🧑"
		if !p.Human {
			icon = "🤖"
		}
		me := ""
		if p.ID == b.PlayerID {
			me = " (你)"
		}
		fmt.Fprintf(&players, "%s %s%s\n", icon, TruncateName(p.Name, 20), me)
	}
	fmt.Fprintf(&players, "\n%d 人", len(b.Lobby.Players))
	sb.WriteString(BoxStyle.Render(players.String()))
	sb.WriteString("\n\n")
	sb.WriteString(SettingsView(b.Lobby.Settings))

	if b.Result != nil {
		sb.WriteString("\n\n")
		sb.WriteString(ResultView(b))
	}
	return sb.String()
}

// SettingsView 规则列表，键名即 set 命令使用的名字
func SettingsView(s protocol.GameSettings) string {
	limit := "null"
	if s.LimitMeldSize != nil {
		limit = fmt.Sprint(*s.LimitMeldSize)
	}
	rows := [][2]string{
		{"deck_count", fmt.Sprint(s.DeckCount)},
		{"enable_jokers", fmt.Sprint(s.EnableJokers)},
		{"hand_size", fmt.Sprint(s.HandSize)},
		{"first_turn", string(s.FirstTurn)},
		{"allow_draw_choice", fmt.Sprint(s.AllowDrawChoice)},
		{"allow_run_mixed_suit", fmt.Sprint(s.AllowRunMixedSuit)},
		{"allow_set_duplicate_suit", fmt.Sprint(s.AllowSetDuplicateSuit)},
		{"limit_meld_size", limit},
		{"ace_rank", string(s.AceRank)},
		{"deck_exhaust", string(s.DeckExhaust)},
		{"require_end_discard", fmt.Sprint(s.RequireEndDiscard)},
		{"lay_at_end", fmt.Sprint(s.LayAtEnd)},
	}
	var sb strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&sb, "%-26s %s\n", row[0], row[1])
	}
	return BoxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// TableView 对局：其他玩家、牌堆、弃牌堆、牌组和自己的手牌
func TableView(b *client.Board) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(fmt.Sprintf("🃏 对局 %s", b.GameCode)))
	sb.WriteString("\n\n")

	for _, p := range b.Players {
		marker := "  "
		if p.ID == b.Turn.PlayerID {
			marker = TurnStyle.Render("▶ ")
		}
		fmt.Fprintf(&sb, "%s%s  %d 张\n", marker, TruncateName(p.Name, 20), len(p.Hand))
	}
	sb.WriteString("\n")

	discard := DimStyle.Render("(空)")
	if top, ok := b.DiscardTop(); ok {
		discard = RenderCard(top)
	}
	fmt.Fprintf(&sb, "牌堆 %d 张    弃牌堆 %s\n\n", len(b.Deck), discard)

	if len(b.Melds) == 0 {
		sb.WriteString(DimStyle.Render("桌上还没有牌组"))
		sb.WriteString("\n")
	}
	for i, meld := range b.Melds {
		fmt.Fprintf(&sb, "%2d) %s\n", i+1, renderCards(meld))
	}
	sb.WriteString("\n")

	hand := b.MyHand()
	labels := make([]string, len(hand))
	for i := range hand {
		labels[i] = DimStyle.Render(fmt.Sprintf("%3d", i+1))
	}
	sb.WriteString(BoxStyle.Render(renderCards(hand) + "\n" + strings.Join(labels, " ")))
	sb.WriteString("\n")

	switch {
	case b.Result != nil:
		sb.WriteString(ResultView(b))
	case b.IsMyTurn() && b.Turn.State == protocol.TurnDraw:
		sb.WriteString(TurnStyle.Render("轮到你了：draw deck 或 draw discard"))
	case b.IsMyTurn():
		sb.WriteString(TurnStyle.Render("亮牌 (meld)、接牌 (lay)，最后弃一张 (discard)"))
	default:
		if p := b.Player(b.Turn.PlayerID); p != nil {
			sb.WriteString(DimStyle.Render(fmt.Sprintf("等待 %s ...", p.Name)))
		}
	}
	return sb.String()
}

// ResultView 本局结算
func ResultView(b *client.Board) string {
	var sb strings.Builder
	if b.Result.WinnerID == nil {
		sb.WriteString("本局结束，无人获胜\n")
	} else {
		name := *b.Result.WinnerID
		if p := b.Player(name); p != nil {
			name = p.Name
		}
		fmt.Fprintf(&sb, "🏆 %s 获胜\n", name)
	}
	for _, p := range b.Players {
		fmt.Fprintf(&sb, "  %s: %d 分\n", p.Name, b.Result.HandValues[p.ID])
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderCards(cards []protocol.ClientCard) string {
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = RenderCard(c)
	}
	return strings.Join(rendered, " ")
}
