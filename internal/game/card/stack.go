package card

import "slices"

// Stack 有序的一叠牌，最后一张为"顶"
//
// 牌堆、弃牌堆、手牌和桌面上的每一组牌都是 Stack。
// 所有操作都不会失败：移除不存在的牌是空操作，插入位置会被钳制到合法范围。
type Stack struct {
	cards []*Card
}

// NewStack 用给定的牌创建 Stack
func NewStack(cards ...*Card) *Stack {
	return &Stack{cards: slices.Clone(cards)}
}

// Len 张数
func (s *Stack) Len() int {
	return len(s.cards)
}

// Cards 返回牌的副本
func (s *Stack) Cards() []*Card {
	return slices.Clone(s.cards)
}

// Top 顶牌，空时返回 nil
func (s *Stack) Top() *Card {
	if len(s.cards) == 0 {
		return nil
	}
	return s.cards[len(s.cards)-1]
}

// Contains 是否包含该牌
func (s *Stack) Contains(c *Card) bool {
	return slices.Contains(s.cards, c)
}

// Find 按 ID 查找
func (s *Stack) Find(id string) *Card {
	for _, c := range s.cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Remove 移除给定的牌（无论在什么位置）
func (s *Stack) Remove(cards ...*Card) {
	s.cards = slices.DeleteFunc(s.cards, func(c *Card) bool {
		return slices.Contains(cards, c)
	})
}

// Insert 在 position 处依次插入，已在本 Stack 中的牌会先被移除
func (s *Stack) Insert(cards []*Card, position int) {
	s.Remove(cards...)
	position = clamp(position, 0, len(s.cards))
	s.cards = slices.Insert(s.cards, position, cards...)
}

// Reshuffle 打乱顺序并为每张牌重新生成 ID
func (s *Stack) Reshuffle() {
	Shuffle(s.cards)
	s.RegenerateIDs()
}

// Reverse 翻转顺序
func (s *Stack) Reverse() {
	slices.Reverse(s.cards)
}

// RegenerateIDs 为每张牌重新生成 ID
func (s *Stack) RegenerateIDs() {
	for _, c := range s.cards {
		c.RegenerateID()
	}
}

// IDs 按顺序返回所有牌的 ID
func (s *Stack) IDs() []string {
	ids := make([]string, len(s.cards))
	for i, c := range s.cards {
		ids[i] = c.ID
	}
	return ids
}

// Take 取走全部牌，Stack 变为空
func (s *Stack) Take() []*Card {
	cards := s.cards
	s.cards = nil
	return cards
}

// Clone 浅拷贝：新的切片，同一批牌
func (s *Stack) Clone() *Stack {
	return NewStack(s.cards...)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
