package client

import (
	"fmt"
	"slices"

	"github.com/palemoky/super-rummy/internal/protocol"
)

// BoardPlayer is one seat as seen by the local player
type BoardPlayer struct {
	ID    string
	Name  string
	Human bool
	Hand  []protocol.ClientCard
}

// Board mirrors the table purely from server events.
// Cards are tracked by id; faces stay nil until the server reveals them.
type Board struct {
	// Local player
	PlayerID string

	// Lobby
	Lobby protocol.ClientLobby

	// Round
	Playing  bool
	GameCode string
	Settings protocol.GameSettings
	Players  []*BoardPlayer
	Deck     []protocol.ClientCard // bottom first, top last
	Discard  []protocol.ClientCard // top last
	Melds    [][]protocol.ClientCard
	Turn     protocol.TurnEvent

	Result    *protocol.EndEvent
	LastError *protocol.ErrorEvent
}

// NewBoard creates an empty board
func NewBoard() *Board {
	return &Board{}
}

// Apply folds one event into the mirror
func (b *Board) Apply(event protocol.Event) error {
	switch ev := event.(type) {
	case *protocol.PingEvent:
	case *protocol.LobbyEvent:
		b.Lobby = ev.Lobby
		b.PlayerID = ev.Lobby.CurrentPlayerID
	case *protocol.StartEvent:
		b.start(ev)
	case *protocol.TurnEvent:
		b.Turn = *ev
	case *protocol.MoveEvent:
		return b.move(ev)
	case *protocol.RedeckEvent:
		b.Discard = nil
		b.Deck = hidden(ev.NewCardIDs)
	case *protocol.EndEvent:
		b.Playing = false
		b.Result = ev
	case *protocol.ErrorEvent:
		b.LastError = ev
	default:
		return fmt.Errorf("unexpected event %T", event)
	}
	return nil
}

func (b *Board) start(ev *protocol.StartEvent) {
	b.Playing = true
	b.PlayerID = ev.CurrentPlayerID
	b.GameCode = ev.GameCode
	b.Settings = ev.Settings
	b.Deck = hidden(ev.CardIDs)
	b.Discard = nil
	b.Melds = nil
	b.Turn = protocol.TurnEvent{}
	b.Result = nil
	b.LastError = nil

	b.Players = make([]*BoardPlayer, len(ev.Players))
	for i, p := range ev.Players {
		b.Players[i] = &BoardPlayer{ID: p.ID, Name: p.Name, Human: p.Human, Hand: slices.Clone(p.Hand)}
	}
}

// move removes the cards from wherever they are, then inserts them at the destination
func (b *Board) move(ev *protocol.MoveEvent) error {
	ids := make([]string, len(ev.Cards))
	for i, c := range ev.Cards {
		ids[i] = c.ID
	}
	b.remove(ids)

	dest := ev.Destination
	switch dest.Type {
	case protocol.DestPlayer:
		p := b.Player(dest.PlayerID)
		if p == nil {
			return fmt.Errorf("move to unknown player %q", dest.PlayerID)
		}
		p.Hand = insert(p.Hand, ev.Cards, dest.Position)
	case protocol.DestDiscard:
		b.Discard = append(b.Discard, ev.Cards...)
	case protocol.DestMeld:
		n := clamp(dest.MeldNumber, len(b.Melds))
		if n == len(b.Melds) {
			b.Melds = append(b.Melds, nil)
		}
		b.Melds[n] = insert(b.Melds[n], ev.Cards, dest.Position)
	default:
		return fmt.Errorf("unknown destination %q", dest.Type)
	}
	return nil
}

func (b *Board) remove(ids []string) {
	drop := func(c protocol.ClientCard) bool { return slices.Contains(ids, c.ID) }
	b.Deck = slices.DeleteFunc(b.Deck, drop)
	b.Discard = slices.DeleteFunc(b.Discard, drop)
	for _, p := range b.Players {
		p.Hand = slices.DeleteFunc(p.Hand, drop)
	}
	for i := range b.Melds {
		b.Melds[i] = slices.DeleteFunc(b.Melds[i], drop)
	}
}

// Player finds a seat by id
func (b *Board) Player(id string) *BoardPlayer {
	for _, p := range b.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Me is the local player's seat, nil outside a round
func (b *Board) Me() *BoardPlayer {
	return b.Player(b.PlayerID)
}

// MyHand returns the local player's hand
func (b *Board) MyHand() []protocol.ClientCard {
	if me := b.Me(); me != nil {
		return me.Hand
	}
	return nil
}

// IsMyTurn reports whether the local player is to act
func (b *Board) IsMyTurn() bool {
	return b.Playing && b.Turn.PlayerID == b.PlayerID
}

// DeckTop returns the id of the top deck card, or "" when empty
func (b *Board) DeckTop() string {
	if len(b.Deck) == 0 {
		return ""
	}
	return b.Deck[len(b.Deck)-1].ID
}

// DiscardTop returns the top discard card
func (b *Board) DiscardTop() (protocol.ClientCard, bool) {
	if len(b.Discard) == 0 {
		return protocol.ClientCard{}, false
	}
	return b.Discard[len(b.Discard)-1], true
}

// HandCardIDs maps 1-based hand indexes to card ids
func (b *Board) HandCardIDs(indexes []int) ([]string, error) {
	hand := b.MyHand()
	ids := make([]string, 0, len(indexes))
	for _, i := range indexes {
		if i < 1 || i > len(hand) {
			return nil, fmt.Errorf("no card #%d in hand", i)
		}
		ids = append(ids, hand[i-1].ID)
	}
	return ids, nil
}

func hidden(ids []string) []protocol.ClientCard {
	cards := make([]protocol.ClientCard, len(ids))
	for i, id := range ids {
		cards[i] = protocol.ClientCard{ID: id}
	}
	return cards
}

func insert(dst, cards []protocol.ClientCard, position int) []protocol.ClientCard {
	return slices.Insert(dst, clamp(position, len(dst)), cards...)
}

func clamp(position, length int) int {
	return max(0, min(position, length))
}
