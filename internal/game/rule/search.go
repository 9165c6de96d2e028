package rule

import (
	"slices"

	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/protocol"
)

// FindRuns 找出所有顺子候选
//
// 非百搭按花色分组（允许混花色时只有一组），每组按点数排序后从每个起点贪心延伸，
// 百搭共用一个池子用于补空缺，最后不足 3 张时再用百搭补齐。
func FindRuns(cards []*card.Card, s protocol.GameSettings) [][]*card.Card {
	nonWilds, wilds := SplitWilds(cards)

	var order []card.Suit
	buckets := make(map[card.Suit][]*card.Card)
	for _, c := range nonWilds {
		suit := c.Face.Suit
		if s.AllowRunMixedSuit {
			suit = ""
		}
		if _, ok := buckets[suit]; !ok {
			order = append(order, suit)
		}
		buckets[suit] = append(buckets[suit], c)
	}

	var runs [][]*card.Card
	for _, suit := range order {
		bucket := buckets[suit]
		slices.SortStableFunc(bucket, func(a, b *card.Card) int {
			return RankValue(a, s) - RankValue(b, s)
		})

		for i := range bucket {
			run := []*card.Card{bucket[i]}
			pool := wilds
			for _, next := range bucket[i+1:] {
				last := RankValue(run[len(run)-1], s)
				value := RankValue(next, s)
				if value == last {
					continue
				}
				gap := value - last - 1
				if value < last || gap > len(pool) {
					break
				}
				run = append(run, pool[:gap]...)
				pool = pool[gap:]
				run = append(run, next)
			}
			if len(run)+len(pool) < minMeldSize {
				continue
			}
			if pad := minMeldSize - len(run); pad > 0 {
				run = append(run, pool[:pad]...)
			}
			runs = append(runs, SortMeld(run, s))
		}
	}
	return runs
}

// FindSets 找出所有刻子候选
//
// 同点数 3 张以上直接成组；2 张以上且加上百搭能到 3 张时，同时给出最少百搭和全部百搭两种组合；
// 百搭有 3 张以上时，全百搭也是候选。
func FindSets(cards []*card.Card, s protocol.GameSettings) [][]*card.Card {
	nonWilds, wilds := SplitWilds(cards)

	var order []card.Rank
	buckets := make(map[card.Rank][]*card.Card)
	for _, c := range nonWilds {
		if _, ok := buckets[c.Face.Rank]; !ok {
			order = append(order, c.Face.Rank)
		}
		buckets[c.Face.Rank] = append(buckets[c.Face.Rank], c)
	}

	var sets [][]*card.Card
	for _, rank := range order {
		bucket := buckets[rank]
		if len(bucket) >= minMeldSize {
			sets = append(sets, SortMeld(slices.Clone(bucket), s))
		}
		if len(wilds) > 0 && len(bucket) >= 2 && len(bucket)+len(wilds) >= minMeldSize {
			if len(bucket) < minMeldSize && len(bucket)+len(wilds) > minMeldSize {
				minimal := slices.Concat(bucket, wilds[:minMeldSize-len(bucket)])
				sets = append(sets, SortMeld(minimal, s))
			}
			sets = append(sets, SortMeld(slices.Concat(bucket, wilds), s))
		}
	}
	if len(wilds) >= minMeldSize {
		sets = append(sets, slices.Clone(wilds[:minMeldSize]))
		if len(wilds) > minMeldSize {
			sets = append(sets, slices.Clone(wilds))
		}
	}
	return sets
}

// CanWinWith 打出这组牌后能否直接结束本局（手牌总数为 total）
//
// 牌组至少要用掉 total-1 张；要求最后弃牌时，只有 4 张以上的牌组或 3 张手牌的情况才算数。
func CanWinWith(meld []*card.Card, total int, s protocol.GameSettings) bool {
	return len(meld) >= total-1 && (!s.RequireEndDiscard || len(meld) > minMeldSize || total == minMeldSize)
}

// FindMelds 手牌中所有可以打出的牌组，按优先级排序
//
// 候选必须合法，至少含 2 张非百搭（除非能直接结束本局），
// 要求最后弃牌时要留下一张，且打出后不能只剩下 excluded 这张牌。
// 排序：非百搭张数多的优先，其次用到的百搭少的优先。
func FindMelds(cards []*card.Card, s protocol.GameSettings, excluded *card.Card) [][]*card.Card {
	maxLength := len(cards)
	if s.RequireEndDiscard {
		maxLength--
	}

	candidates := slices.Concat(FindRuns(cards, s), FindSets(cards, s))
	melds := make([][]*card.Card, 0, len(candidates))
	for _, meld := range candidates {
		if len(meld) > maxLength || !CheckLegal(meld, s) {
			continue
		}
		if NonWildCount(meld) < 2 && !CanWinWith(meld, len(cards), s) {
			continue
		}
		if leavesOnly(cards, meld, excluded) {
			continue
		}
		melds = append(melds, meld)
	}

	slices.SortStableFunc(melds, func(a, b []*card.Card) int {
		if na, nb := NonWildCount(a), NonWildCount(b); na != nb {
			return nb - na
		}
		return (len(a) - NonWildCount(a)) - (len(b) - NonWildCount(b))
	})
	return melds
}

// FindNextMeld 优先级最高的牌组，没有则返回 nil
func FindNextMeld(cards []*card.Card, s protocol.GameSettings, excluded *card.Card) []*card.Card {
	melds := FindMelds(cards, s, excluded)
	if len(melds) == 0 {
		return nil
	}
	return melds[0]
}

// leavesOnly 从 cards 中拿走 used 后是否只剩 excluded 一张
func leavesOnly(cards, used []*card.Card, excluded *card.Card) bool {
	if excluded == nil || len(cards)-len(used) != 1 {
		return false
	}
	return !slices.Contains(used, excluded) && slices.Contains(cards, excluded)
}
