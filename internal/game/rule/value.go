package rule

import (
	"slices"
	"strconv"

	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/protocol"
)

// RankValue 点数大小：百搭 -1，J/Q/K 为 11/12/13，A 按规则为 1 或 14，其余为面值
func RankValue(c *card.Card, s protocol.GameSettings) int {
	switch c.Face.Rank {
	case card.RankW:
		return -1
	case card.RankJ:
		return 11
	case card.RankQ:
		return 12
	case card.RankK:
		return 13
	case card.RankA:
		if s.AceIsHigh() {
			return 14
		}
		return 1
	}
	n, _ := strconv.Atoi(string(c.Face.Rank))
	return n
}

// ScoreValue 结算分值：百搭 15，J/Q/K 为 10，A 按规则为 1 或 11，其余为面值
func ScoreValue(c *card.Card, s protocol.GameSettings) int {
	switch c.Face.Rank {
	case card.RankW:
		return 15
	case card.RankJ, card.RankQ, card.RankK:
		return 10
	case card.RankA:
		if s.AceIsHigh() {
			return 11
		}
		return 1
	}
	n, _ := strconv.Atoi(string(c.Face.Rank))
	return n
}

// HandValue 一手牌的总分
func HandValue(cards []*card.Card, s protocol.GameSettings) int {
	total := 0
	for _, c := range cards {
		total += ScoreValue(c, s)
	}
	return total
}

// NonWildCount 非百搭牌的张数
func NonWildCount(cards []*card.Card) int {
	n := 0
	for _, c := range cards {
		if !c.IsWild() {
			n++
		}
	}
	return n
}

// SplitWilds 分出普通牌和百搭，保持原有顺序
func SplitWilds(cards []*card.Card) (nonWilds, wilds []*card.Card) {
	for _, c := range cards {
		if c.IsWild() {
			wilds = append(wilds, c)
		} else {
			nonWilds = append(nonWilds, c)
		}
	}
	return nonWilds, wilds
}

// SortMeld 桌面上牌组的顺序：先按花色名，再按点数稳定排序（百搭在最前）
func SortMeld(cards []*card.Card, s protocol.GameSettings) []*card.Card {
	slices.SortStableFunc(cards, func(a, b *card.Card) int {
		switch {
		case a.Face.Suit < b.Face.Suit:
			return -1
		case a.Face.Suit > b.Face.Suit:
			return 1
		}
		return 0
	})
	slices.SortStableFunc(cards, func(a, b *card.Card) int {
		return RankValue(a, s) - RankValue(b, s)
	})
	return cards
}
