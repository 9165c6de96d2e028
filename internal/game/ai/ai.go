// Package ai 电脑玩家的出牌决策
//
// 决策只用 rule 包提供的判定和搜索，通过 Table 接口操作牌局，不直接接触对局内部状态。
package ai

import (
	"slices"

	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/game/rule"
	"github.com/palemoky/super-rummy/internal/protocol"
)

// Table 电脑玩家在自己回合内能看到和做的事
type Table interface {
	Settings() protocol.GameSettings
	// Hand 自己的手牌（副本，按手牌顺序）
	Hand() []*card.Card
	// Melds 桌面上的牌组（副本）
	Melds() [][]*card.Card
	DeckTop() *card.Card
	DiscardTop() *card.Card

	DrawFromDeck()
	// DrawFromDiscard 拿弃牌堆顶的牌，这张牌本回合不能再弃掉
	DrawFromDiscard()
	PlayMeld(cards []*card.Card)
	LayCard(c *card.Card, meld int)
	Discard(c *card.Card)
}

// Turn 一个回合的决策记录，用于日志和测试
type Turn struct {
	TookDiscard bool
	Drawn       *card.Card
	Melds       int
	Lays        int
	Discarded   *card.Card // 手牌出完时为 nil
}

// TakeTurn 完成一个完整回合：摸牌、亮牌、接牌、弃牌
//
// 手牌打完时不弃牌，由调用方结束本局。
func TakeTurn(t Table) Turn {
	s := t.Settings()
	var turn Turn

	top := t.DiscardTop()
	switch {
	case top != nil && t.DeckTop() == nil:
		turn.TookDiscard = true
	case top != nil && !CanEmptyHand(t.Hand(), t.Melds(), s):
		turn.TookDiscard = WantsDiscard(t.Hand(), top, s)
	}

	var nonDiscardable *card.Card
	if turn.TookDiscard {
		turn.Drawn = top
		nonDiscardable = top
		t.DrawFromDiscard()
	} else {
		turn.Drawn = t.DeckTop()
		t.DrawFromDeck()
	}

	for {
		meld := rule.FindNextMeld(t.Hand(), s, nonDiscardable)
		if meld == nil {
			break
		}
		t.PlayMeld(meld)
		turn.Melds++
	}

	for {
		hand := t.Hand()
		i, meld, ok := rule.FindNextPreferredLay(hand, t.Melds(), s, nonDiscardable)
		if !ok {
			break
		}
		t.LayCard(hand[i], meld)
		turn.Lays++
	}

	hand := t.Hand()
	if len(hand) == 0 {
		return turn
	}
	turn.Discarded = ChooseDiscard(hand, nonDiscardable, s)
	t.Discard(turn.Discarded)
	return turn
}

// CanEmptyHand 模拟：不断亮出牌组，再往牌组上接牌，看手牌能否打完
func CanEmptyHand(hand []*card.Card, melds [][]*card.Card, s protocol.GameSettings) bool {
	sim := slices.Clone(hand)
	simMelds := make([][]*card.Card, len(melds), len(melds)+len(hand)/3)
	for i, m := range melds {
		simMelds[i] = slices.Clone(m)
	}

	for {
		meld := rule.FindNextMeld(sim, s, nil)
		if meld == nil {
			break
		}
		sim = without(sim, meld...)
		simMelds = append(simMelds, meld)
	}

	for {
		i, m, ok := rule.FindNextPreferredLay(sim, simMelds, s, nil)
		if !ok {
			break
		}
		simMelds[m] = rule.SortMeld(append(slices.Clone(simMelds[m]), sim[i]), s)
		sim = without(sim, sim[i])
	}
	return len(sim) == 0
}

// WantsDiscard 弃牌堆顶的牌是否比盲摸更好
//
// 加上这张牌后能组成的牌组更多，或者再假设多一张百搭时能组成的更多（说明它和手里的牌只差一张），就拿它。
func WantsDiscard(hand []*card.Card, top *card.Card, s protocol.GameSettings) bool {
	wild := card.NewWild()
	with := slices.Concat(hand, []*card.Card{top})

	meldsWith := len(rule.FindMelds(with, s, nil))
	meldsWithout := len(rule.FindMelds(hand, s, nil))
	nearWith := len(rule.FindMelds(slices.Concat(with, []*card.Card{wild}), s, nil))
	nearWithout := len(rule.FindMelds(slices.Concat(hand, []*card.Card{wild}), s, nil))

	return meldsWith > meldsWithout || nearWith > nearWithout
}

// ChooseDiscard 选出要弃的牌
//
// 先按点数从大到小排，再按"加一张百搭后参与的牌组数"从少到多稳定排序，取第一张。
func ChooseDiscard(hand []*card.Card, nonDiscardable *card.Card, s protocol.GameSettings) *card.Card {
	candidates := without(hand, nonDiscardable)
	if len(candidates) == 0 {
		candidates = slices.Clone(hand)
	}
	slices.SortStableFunc(candidates, func(a, b *card.Card) int {
		return rule.RankValue(b, s) - rule.RankValue(a, s)
	})

	potential := make(map[*card.Card]int, len(hand))
	for _, meld := range rule.FindMelds(slices.Concat(hand, []*card.Card{card.NewWild()}), s, nil) {
		for _, c := range meld {
			potential[c]++
		}
	}
	slices.SortStableFunc(candidates, func(a, b *card.Card) int {
		return potential[a] - potential[b]
	})
	return candidates[0]
}

func without(cards []*card.Card, remove ...*card.Card) []*card.Card {
	out := make([]*card.Card, 0, len(cards))
	for _, c := range cards {
		if !slices.Contains(remove, c) {
			out = append(out, c)
		}
	}
	return out
}
