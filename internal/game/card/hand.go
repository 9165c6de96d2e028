package card

import (
	"strings"
)

// 手牌展示顺序：红心、梅花、方块、黑桃、王
var handSuitOrder = map[Suit]int{
	Hearts:   0,
	Clubs:    1,
	Diamonds: 2,
	Spades:   3,
	Joker:    4,
}

// handRankPosition 手牌中的点数顺序，A 按规则为 1 或 14，百搭排在最后
func handRankPosition(r Rank, aceHigh bool) int {
	switch r {
	case RankA:
		if aceHigh {
			return 14
		}
		return 1
	case RankJ:
		return 11
	case RankQ:
		return 12
	case RankK:
		return 13
	case RankW:
		return 15
	}
	for i, rank := range Ranks {
		if rank == r {
			return i + 1
		}
	}
	return 15
}

// SortsBefore 手牌顺序中 a 是否排在 b 前面
func SortsBefore(a, b *Card, aceHigh bool) bool {
	sa, sb := handSuitOrder[a.Face.Suit], handSuitOrder[b.Face.Suit]
	if sa != sb {
		return sa < sb
	}
	return handRankPosition(a.Face.Rank, aceHigh) < handRankPosition(b.Face.Rank, aceHigh)
}

// HandPosition 新牌插入手牌时的位置：第一张排在它后面的牌之前
func HandPosition(hand []*Card, c *Card, aceHigh bool) int {
	for i, h := range hand {
		if SortsBefore(c, h, aceHigh) {
			return i
		}
	}
	return len(hand)
}

// Parse 解析一组简写，如 "AS 10H WJ"
func Parse(codes ...string) ([]*Card, error) {
	cards := make([]*Card, 0, len(codes))
	for _, code := range codes {
		for _, part := range strings.Fields(code) {
			face, err := ParseFace(part)
			if err != nil {
				return nil, err
			}
			cards = append(cards, New(face.Suit, face.Rank))
		}
	}
	return cards, nil
}

// Faces 提取牌面
func Faces(cards []*Card) []Face {
	faces := make([]Face, len(cards))
	for i, c := range cards {
		faces[i] = c.Face
	}
	return faces
}

// Format 以简写输出一组牌，用于日志
func Format(cards []*Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
