package round

import (
	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/protocol"
)

// 三个移动原语的顺序都是：从来源移出、钳制目标位置、按观看者广播、放入目标。

// moveToHand 移入某个座位的手牌，只有该座位本人（真人）能看到牌面
func (r *Round) moveToHand(cards []*card.Card, from *card.Stack, seat *Seat, position int) {
	from.Remove(cards...)
	position = clampPosition(position, seat.Hand.Len())

	dest := protocol.ToPlayer(seat.ID, position)
	for _, viewer := range r.humans() {
		viewer.Client.SendEvent(&protocol.MoveEvent{
			Cards:       project(cards, viewer == seat),
			Destination: dest,
		})
	}
	seat.Hand.Insert(cards, position)
}

// moveToDiscard 移入弃牌堆顶，所有人可见
func (r *Round) moveToDiscard(cards []*card.Card, from *card.Stack) {
	from.Remove(cards...)

	r.broadcast(&protocol.MoveEvent{
		Cards:       project(cards, true),
		Destination: protocol.ToDiscard(),
	})
	r.discard.Insert(cards, r.discard.Len())
}

// moveToMeld 移入第 meldNumber 组牌，超出末尾时新开一组，所有人可见
func (r *Round) moveToMeld(cards []*card.Card, from *card.Stack, meldNumber, position int) {
	from.Remove(cards...)
	meldNumber = clampPosition(meldNumber, len(r.melds))
	if meldNumber == len(r.melds) {
		r.melds = append(r.melds, card.NewStack())
	}
	meld := r.melds[meldNumber]
	position = clampPosition(position, meld.Len())

	r.broadcast(&protocol.MoveEvent{
		Cards:       project(cards, true),
		Destination: protocol.ToMeld(meldNumber, position),
	})
	meld.Insert(cards, position)
}

// projectHand 某个座位的手牌在 viewer 眼中的样子
func (r *Round) projectHand(seat, viewer *Seat) []protocol.ClientCard {
	return project(seat.Hand.Cards(), seat == viewer && seat.IsHuman())
}

func project(cards []*card.Card, revealed bool) []protocol.ClientCard {
	out := make([]protocol.ClientCard, len(cards))
	for i, c := range cards {
		out[i] = protocol.NewClientCard(c, revealed)
	}
	return out
}

func clampPosition(position, length int) int {
	return max(0, min(position, length))
}
