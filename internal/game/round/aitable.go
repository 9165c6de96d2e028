package round

import (
	"slices"

	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/game/rule"
	"github.com/palemoky/super-rummy/internal/protocol"
)

// aiTable 电脑座位眼中的牌桌，所有操作都走移动原语
type aiTable struct {
	r    *Round
	seat *Seat
}

func (t *aiTable) Settings() protocol.GameSettings { return t.r.settings }
func (t *aiTable) Hand() []*card.Card              { return t.seat.Hand.Cards() }
func (t *aiTable) Melds() [][]*card.Card           { return t.r.meldCards() }
func (t *aiTable) DeckTop() *card.Card             { return t.r.deck.Top() }
func (t *aiTable) DiscardTop() *card.Card          { return t.r.discard.Top() }

func (t *aiTable) DrawFromDeck() {
	t.r.drawTo(t.seat, t.r.deck.Top(), t.r.deck)
}

func (t *aiTable) DrawFromDiscard() {
	top := t.r.discard.Top()
	t.r.nonDiscardable = top
	t.r.drawTo(t.seat, top, t.r.discard)
}

func (t *aiTable) PlayMeld(cards []*card.Card) {
	t.r.moveToMeld(rule.SortMeld(slices.Clone(cards), t.r.settings), t.seat.Hand, len(t.r.melds), 0)
}

func (t *aiTable) LayCard(c *card.Card, meld int) {
	t.r.layCard(t.seat, c, meld)
}

func (t *aiTable) Discard(c *card.Card) {
	t.r.moveToDiscard([]*card.Card{c}, t.seat.Hand)
}
