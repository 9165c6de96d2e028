package rule

import (
	"slices"

	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/protocol"
)

// FindLays 把 c 接到哪些牌组上仍然合法，runsOnly 时只算接成顺子的
func FindLays(c *card.Card, melds [][]*card.Card, s protocol.GameSettings, runsOnly bool) []int {
	var indexes []int
	for i, meld := range melds {
		extended := append(slices.Clone(meld), c)
		if !CheckLegal(extended, s) {
			continue
		}
		if runsOnly && !CheckRun(extended, s) {
			continue
		}
		indexes = append(indexes, i)
	}
	return indexes
}

// FindNextPreferredLay 找出下一张要接的牌及目标牌组
//
// 依次尝试：普通牌接顺子、普通牌接刻子、百搭接顺子、百搭接刻子。
// 要求最后弃牌时不能接掉最后一张；接完后不能只剩 excluded 这张牌。
func FindNextPreferredLay(cards []*card.Card, melds [][]*card.Card, s protocol.GameSettings, excluded *card.Card) (cardIndex, meldIndex int, ok bool) {
	if len(melds) == 0 {
		return 0, 0, false
	}

	passes := []struct {
		wild     bool
		runsOnly bool
	}{
		{wild: false, runsOnly: true},
		{wild: false, runsOnly: false},
		{wild: true, runsOnly: true},
		{wild: true, runsOnly: false},
	}
	for _, pass := range passes {
		for i, c := range cards {
			if c.IsWild() != pass.wild || !layAllowed(cards, i, s, excluded) {
				continue
			}
			if lays := FindLays(c, melds, s, pass.runsOnly); len(lays) > 0 {
				return i, lays[0], true
			}
		}
	}
	return 0, 0, false
}

func layAllowed(cards []*card.Card, index int, s protocol.GameSettings, excluded *card.Card) bool {
	remaining := len(cards) - 1
	switch remaining {
	case 0:
		if s.RequireEndDiscard {
			return false
		}
	case 1:
		if excluded != nil && cards[1-index] == excluded {
			return false
		}
	}
	return true
}
