package card

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// Suit 花色
type Suit string

// Rank 点数
type Rank string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
	Clubs    Suit = "clubs"
	Joker    Suit = "joker" // 王牌（唯一的百搭）
)

const (
	RankA  Rank = "A"
	Rank2  Rank = "2"
	Rank3  Rank = "3"
	Rank4  Rank = "4"
	Rank5  Rank = "5"
	Rank6  Rank = "6"
	Rank7  Rank = "7"
	Rank8  Rank = "8"
	Rank9  Rank = "9"
	Rank10 Rank = "10"
	RankJ  Rank = "J"
	RankQ  Rank = "Q"
	RankK  Rank = "K"
	RankW  Rank = "W" // 百搭
)

// Suits 普通花色（不含王）
var Suits = []Suit{Spades, Clubs, Hearts, Diamonds}

// Ranks 普通点数，按 A 到 K 排列
var Ranks = []Rank{RankA, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10, RankJ, RankQ, RankK}

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Clubs:    "♣",
	Diamonds: "♦",
	Joker:    "★",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return string(s)
}

// Valid 是否为合法花色
func (s Suit) Valid() bool {
	_, ok := suitSymbols[s]
	return ok
}

// Valid 是否为合法点数
func (r Rank) Valid() bool {
	if r == RankW {
		return true
	}
	for _, rank := range Ranks {
		if rank == r {
			return true
		}
	}
	return false
}

// Face 牌面（不可变）
type Face struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// IsWild 是否为百搭
func (f Face) IsWild() bool {
	return f.Rank == RankW
}

// IsRed 红色花色
func (f Face) IsRed() bool {
	return f.Suit == Hearts || f.Suit == Diamonds
}

func (f Face) String() string {
	if f.IsWild() {
		return "W" + Joker.String()
	}
	return string(f.Rank) + f.Suit.String()
}

// Card 一张具体的牌：牌面 + 服务端生成的唯一 ID
//
// ID 在牌的位置被隐藏时（洗牌、重新组牌）会重新生成，
// 因此牌的身份以指针为准，ID 只用于和客户端通信。
type Card struct {
	ID   string
	Face Face
}

// New 创建一张新牌
func New(suit Suit, rank Rank) *Card {
	return &Card{ID: newID(), Face: Face{Suit: suit, Rank: rank}}
}

// NewWild 创建一张百搭
func NewWild() *Card {
	return New(Joker, RankW)
}

// IsWild 是否为百搭
func (c *Card) IsWild() bool {
	return c.Face.IsWild()
}

// RegenerateID 重新生成 ID
func (c *Card) RegenerateID() {
	c.ID = newID()
}

func (c *Card) String() string {
	return c.Face.String()
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewDeck 生成 decks 副牌，启用王牌时每副加两张百搭，返回洗好的牌
func NewDeck(decks int, jokers bool) []*Card {
	size := decks * 52
	if jokers {
		size += decks * 2
	}
	deck := make([]*Card, 0, size)
	for range decks {
		for _, s := range Suits {
			for _, r := range Ranks {
				deck = append(deck, New(s, r))
			}
		}
		if jokers {
			deck = append(deck, NewWild(), NewWild())
		}
	}
	Shuffle(deck)
	return deck
}

// DeckSize 计算牌堆总张数
func DeckSize(decks int, jokers bool) int {
	if jokers {
		return decks * 54
	}
	return decks * 52
}

// Shuffle 原地洗牌
func Shuffle(cards []*Card) {
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// ParseFace 解析 "10H"、"AS"、"WJ" 这类简写
func ParseFace(code string) (Face, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 2 {
		return Face{}, fmt.Errorf("无法识别的牌: %q", code)
	}
	rank := Rank(code[:len(code)-1])
	var suit Suit
	switch code[len(code)-1] {
	case 'S':
		suit = Spades
	case 'H':
		suit = Hearts
	case 'D':
		suit = Diamonds
	case 'C':
		suit = Clubs
	case 'J':
		suit = Joker
	default:
		return Face{}, fmt.Errorf("无法识别的花色: %q", code)
	}
	if !rank.Valid() || (suit == Joker) != (rank == RankW) {
		return Face{}, fmt.Errorf("无法识别的点数: %q", code)
	}
	return Face{Suit: suit, Rank: rank}, nil
}
