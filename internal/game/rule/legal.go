package rule

import (
	"slices"

	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/protocol"
)

const (
	minMeldSize = 3
	maxRunSize  = 13 // A 到 K 或 2 到 A
	maxSetSize  = 4  // 不允许重复花色时，四种花色各一张
)

// CheckLegal 是否为合法牌组：至少 3 张，不超过张数上限，并且是刻子或顺子
func CheckLegal(cards []*card.Card, s protocol.GameSettings) bool {
	if len(cards) < minMeldSize {
		return false
	}
	if limit := s.MeldLimit(); limit > 0 && len(cards) > limit {
		return false
	}
	return CheckSet(cards, s) || CheckRun(cards, s)
}

// CheckSet 刻子：所有非百搭点数相同；不允许重复花色时，花色互不相同且最多 4 张
func CheckSet(cards []*card.Card, s protocol.GameSettings) bool {
	var rank card.Rank
	for _, c := range cards {
		if c.IsWild() {
			continue
		}
		if rank == "" {
			rank = c.Face.Rank
		} else if c.Face.Rank != rank {
			return false
		}
	}

	if s.AllowSetDuplicateSuit {
		return true
	}
	if len(cards) > maxSetSize {
		return false
	}
	seen := make(map[card.Suit]bool, len(cards))
	for _, c := range cards {
		if c.IsWild() {
			continue
		}
		if seen[c.Face.Suit] {
			return false
		}
		seen[c.Face.Suit] = true
	}
	return true
}

// CheckRun 顺子：非百搭按点数排序后严格递增，同花色（除非允许混花色），百搭补足空缺
func CheckRun(cards []*card.Card, s protocol.GameSettings) bool {
	if len(cards) > maxRunSize {
		return false
	}
	ranked, wilds := SplitWilds(cards)
	if len(ranked) == 0 {
		return true
	}
	ranked = slices.Clone(ranked)
	slices.SortStableFunc(ranked, func(a, b *card.Card) int {
		return RankValue(a, s) - RankValue(b, s)
	})

	if !s.AllowRunMixedSuit {
		suit := ranked[0].Face.Suit
		for _, c := range ranked[1:] {
			if c.Face.Suit != suit {
				return false
			}
		}
	}

	available := len(wilds)
	prev := RankValue(ranked[0], s) - 1
	for _, c := range ranked {
		next := RankValue(c, s)
		gap := next - prev - 1
		if next <= prev || gap > available {
			return false
		}
		available -= gap
		prev = next
	}
	return true
}
