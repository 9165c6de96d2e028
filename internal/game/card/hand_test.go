package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected Face
		hasError bool
	}{
		{name: "Ace of spades", input: "AS", expected: Face{Suit: Spades, Rank: RankA}},
		{name: "Ten of hearts", input: "10H", expected: Face{Suit: Hearts, Rank: Rank10}},
		{name: "Lower case", input: "qd", expected: Face{Suit: Diamonds, Rank: RankQ}},
		{name: "Wild", input: "WJ", expected: Face{Suit: Joker, Rank: RankW}},
		{name: "Unknown suit", input: "AX", hasError: true},
		{name: "Unknown rank", input: "1S", hasError: true},
		{name: "Joker suit with normal rank", input: "AJ", hasError: true},
		{name: "Wild rank with normal suit", input: "WS", hasError: true},
		{name: "Too short", input: "A", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			face, err := ParseFace(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, face)
		})
	}
}

func TestHandPosition(t *testing.T) {
	t.Parallel()

	hand := MustParse("3H 9H 4C KD 2S WJ")

	tests := []struct {
		name     string
		card     string
		aceHigh  bool
		expected int
	}{
		{name: "Low heart goes first", card: "2H", expected: 0},
		{name: "Between hearts", card: "5H", expected: 1},
		{name: "Ace low heads the hearts", card: "AH", expected: 0},
		{name: "Ace high closes the hearts", card: "AH", aceHigh: true, expected: 2},
		{name: "Club after hearts", card: "10C", expected: 3},
		{name: "Spade before wild", card: "QS", expected: 5},
		{name: "Wild at the end", card: "WJ", expected: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := MustParse(tt.card)[0]
			assert.Equal(t, tt.expected, HandPosition(hand, c, tt.aceHigh))
		})
	}
}

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck(2, true)
	assert.Len(t, deck, 108)
	assert.Equal(t, DeckSize(2, true), len(deck))

	wilds := 0
	ids := make(map[string]bool)
	for _, c := range deck {
		if c.IsWild() {
			wilds++
		}
		ids[c.ID] = true
	}
	assert.Equal(t, 4, wilds)
	assert.Len(t, ids, 108, "every instance should get its own id")

	assert.Len(t, NewDeck(1, false), 52)
}
