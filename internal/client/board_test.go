package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/super-rummy/internal/game/round"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/testutil"
)

type tableHost struct {
	ended bool
}

func (h *tableHost) Code() string            { return "424242" }
func (h *tableHost) IsConnected(string) bool { return true }
func (h *tableHost) RoundEnded(round.Result) { h.ended = true }

// replay feeds every event alice has received since the last call into the board
type replay struct {
	alice *testutil.SimpleClient
	board *Board
	seen  int
}

func (r *replay) sync(t *testing.T) {
	t.Helper()
	events := r.alice.Events()
	for _, ev := range events[r.seen:] {
		require.NoError(t, r.board.Apply(ev))
	}
	r.seen = len(events)
}

// assertMirrors compares the board with the authoritative hands
func assertMirrors(t *testing.T, b *Board, rd *round.Round) {
	t.Helper()
	for _, seat := range rd.Seats() {
		p := b.Player(seat.ID)
		require.NotNil(t, p)
		cards := seat.Hand.Cards()
		require.Len(t, p.Hand, len(cards), seat.ID)
		for i, c := range cards {
			assert.Equal(t, c.ID, p.Hand[i].ID)
			if seat.ID == b.PlayerID {
				require.NotNil(t, p.Hand[i].Face)
				assert.Equal(t, c.Face, *p.Hand[i].Face)
			} else {
				assert.Nil(t, p.Hand[i].Face)
			}
		}
	}
}

func TestBoard_MirrorsScriptedRound(t *testing.T) {
	t.Parallel()

	settings := protocol.DefaultSettings()
	settings.DeckExhaust = protocol.ExhaustEndRound

	for game := range 3 {
		alice := testutil.NewSimpleClient("alice", "Alice")
		host := &tableHost{}
		seats := []*round.Seat{round.HumanSeat(alice), round.AISeat("bot", "电脑")}
		rd := round.New(host, round.NewRegistry(), settings, seats)
		require.NoError(t, rd.Start())

		r := &replay{alice: alice, board: NewBoard()}
		r.sync(t)
		b := r.board
		require.True(t, b.Playing, "game %d", game)
		assert.Equal(t, "alice", b.PlayerID)
		assert.Equal(t, "424242", b.GameCode)
		assertMirrors(t, b, rd)

		for step := 0; !rd.IsOver() && step < 300; step++ {
			require.True(t, b.IsMyTurn())
			require.Equal(t, protocol.TurnDraw, b.Turn.State)

			require.NoError(t, rd.Draw("alice", b.DeckTop()))
			r.sync(t)
			assert.Equal(t, protocol.TurnPlay, b.Turn.State)

			ids, err := b.HandCardIDs([]int{1})
			require.NoError(t, err)
			require.NoError(t, rd.Discard("alice", ids[0]))
			r.sync(t)

			top, ok := b.DiscardTop()
			if !rd.IsOver() {
				require.True(t, ok)
				assertMirrors(t, b, rd)
				// 电脑回合已经结束，弃牌堆顶不是 alice 刚弃的牌，就是电脑弃的牌
				assert.NotNil(t, top.Face)
			}
		}

		require.True(t, rd.IsOver())
		assert.True(t, host.ended)
		assert.False(t, b.Playing)
		require.NotNil(t, b.Result)
		assert.Len(t, b.Result.HandValues, 2)
		assertMirrors(t, b, rd)
	}
}

func TestBoard_MoveAndRedeck(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	require.NoError(t, b.Apply(&protocol.StartEvent{
		Players: []protocol.ClientPlayer{
			{ID: "me", Name: "Me", Human: true},
			{ID: "bot", Name: "Bot"},
		},
		CurrentPlayerID: "me",
		CardIDs:         []string{"c1", "c2", "c3", "c4", "c5"},
		GameCode:        "000001",
	}))
	assert.Equal(t, "c5", b.DeckTop())

	steps := []*protocol.MoveEvent{
		{Cards: []protocol.ClientCard{{ID: "c5"}}, Destination: protocol.ToPlayer("me", 0)},
		{Cards: []protocol.ClientCard{{ID: "c4"}}, Destination: protocol.ToPlayer("me", 99)},
		{Cards: []protocol.ClientCard{{ID: "c3"}}, Destination: protocol.ToPlayer("bot", 0)},
		{Cards: []protocol.ClientCard{{ID: "c2"}}, Destination: protocol.ToDiscard()},
		{Cards: []protocol.ClientCard{{ID: "c5"}, {ID: "c4"}}, Destination: protocol.ToMeld(7, 0)},
		{Cards: []protocol.ClientCard{{ID: "c2"}, {ID: "c4"}, {ID: "c5"}}, Destination: protocol.ToMeld(0, 0)},
	}
	for _, ev := range steps {
		require.NoError(t, b.Apply(ev))
	}

	assert.Empty(t, b.MyHand())
	assert.Len(t, b.Player("bot").Hand, 1)
	assert.Empty(t, b.Discard)
	require.Len(t, b.Melds, 1)
	assert.Equal(t, []string{"c2", "c4", "c5"}, ids(b.Melds[0]))
	assert.Equal(t, "c1", b.DeckTop())

	require.NoError(t, b.Apply(&protocol.RedeckEvent{NewCardIDs: []string{"n1", "n2"}}))
	assert.Equal(t, "n2", b.DeckTop())
	assert.Empty(t, b.Discard)

	assert.Error(t, b.Apply(&protocol.MoveEvent{
		Cards:       []protocol.ClientCard{{ID: "n2"}},
		Destination: protocol.ToPlayer("ghost", 0),
	}))
}

func TestBoard_HandCardIDs(t *testing.T) {
	t.Parallel()

	b := NewBoard()
	b.PlayerID = "me"
	b.Players = []*BoardPlayer{{ID: "me", Hand: []protocol.ClientCard{{ID: "a"}, {ID: "b"}}}}

	tests := []struct {
		name    string
		indexes []int
		want    []string
		wantErr bool
	}{
		{"in order", []int{1, 2}, []string{"a", "b"}, false},
		{"reversed", []int{2, 1}, []string{"b", "a"}, false},
		{"zero", []int{0}, nil, true},
		{"past end", []int{3}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := b.HandCardIDs(tt.indexes)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ids(cards []protocol.ClientCard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
