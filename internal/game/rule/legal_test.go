package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/protocol"
)

func normalRules() protocol.GameSettings {
	s := protocol.DefaultSettings()
	s.AllowSetDuplicateSuit = false
	return s
}

func aceHighRules() protocol.GameSettings {
	s := protocol.DefaultSettings()
	s.AceRank = protocol.AceHigh
	return s
}

func dupSetRules() protocol.GameSettings {
	return protocol.DefaultSettings()
}

func mixedRunRules() protocol.GameSettings {
	s := protocol.DefaultSettings()
	s.AllowRunMixedSuit = true
	return s
}

func limit3Rules() protocol.GameSettings {
	return normalRules().WithMeldLimit(3)
}

func limit4Rules() protocol.GameSettings {
	return protocol.DefaultSettings().WithMeldLimit(4)
}

func TestCheckLegal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		settings protocol.GameSettings
		expected bool
	}{
		// 刻子
		{name: "Normal set", cards: "AS AH AD", settings: normalRules(), expected: true},
		{name: "Middle set", cards: "8S 8H 8D", settings: normalRules(), expected: true},
		{name: "Set with wild", cards: "AS AH WJ", settings: normalRules(), expected: true},
		{name: "Three wilds", cards: "WJ WJ WJ", settings: normalRules(), expected: true},
		{name: "Four suits", cards: "AS AH AD AC", settings: normalRules(), expected: true},
		{name: "Four suits plus wild", cards: "AS AH AD AC WJ", settings: normalRules(), expected: false},
		{name: "Pair plus three wilds", cards: "AS AH WJ WJ WJ", settings: normalRules(), expected: false},
		{name: "Four suits plus wild duplicate rules", cards: "AS AH AD AC WJ", settings: dupSetRules(), expected: true},
		{name: "Duplicate suit", cards: "AS AD AD", settings: normalRules(), expected: false},
		{name: "Duplicate suit allowed", cards: "AS AD AD", settings: dupSetRules(), expected: true},
		{name: "Four aces duplicate rules", cards: "AS AH AD AC", settings: dupSetRules(), expected: true},
		{name: "Limit 3 set", cards: "AS AH AD", settings: limit3Rules(), expected: true},
		{name: "Set over limit 3", cards: "AS AD AD AC", settings: limit3Rules(), expected: false},
		{name: "Limit 4 set", cards: "AS AD AD AC", settings: limit4Rules(), expected: true},
		{name: "Set over limit 4", cards: "AS AD AD AC AC", settings: limit4Rules(), expected: false},

		// 顺子
		{name: "Spade run", cards: "5S 6S 7S", settings: normalRules(), expected: true},
		{name: "Heart run", cards: "5H 6H 7H", settings: normalRules(), expected: true},
		{name: "Ace low run", cards: "AS 2S 3S", settings: normalRules(), expected: true},
		{name: "Ace high run", cards: "QS KS AS", settings: aceHighRules(), expected: true},
		{name: "Ace high run under low rules", cards: "QS KS AS", settings: normalRules(), expected: false},
		{name: "Shuffled run", cards: "AS 3S 2S", settings: normalRules(), expected: true},
		{name: "Mixed run", cards: "AS 2D 3H", settings: mixedRunRules(), expected: true},
		{name: "Mixed run partial", cards: "AS 2D 3S", settings: mixedRunRules(), expected: true},
		{name: "Mixed run not allowed", cards: "AS 2D 3H", settings: normalRules(), expected: false},
		{name: "Run with wild", cards: "AS 2S WJ", settings: normalRules(), expected: true},
		{name: "Run two wilds", cards: "8S WJ WJ", settings: normalRules(), expected: true},
		{name: "Run gap filled", cards: "4S WJ 6S", settings: normalRules(), expected: true},
		{name: "Run gap too wide", cards: "4S WJ 7S", settings: normalRules(), expected: false},
		{name: "Run duplicate rank", cards: "4S 4S 5S 6S", settings: normalRules(), expected: false},
		{name: "Max run", cards: "AS 2S 3S 4S 5S 6S 7S 8S 9S 10S JS QS KS", settings: normalRules(), expected: true},
		{name: "Run overflow with wild", cards: "AS 2S 3S 4S 5S 6S 7S 8S 9S 10S JS QS KS WJ", settings: normalRules(), expected: false},
		{name: "Max run with wild", cards: "AS 2S 3S 4S 5S 7S 8S 9S 10S JS QS KS WJ", settings: normalRules(), expected: true},
		{name: "Limit 3 run", cards: "4S 5S 6S", settings: limit3Rules(), expected: true},
		{name: "Limit 4 run", cards: "4S 5S 6S 7S", settings: limit4Rules(), expected: true},
		{name: "Run over limit", cards: "4S 5S 6S 7S 8S", settings: limit4Rules(), expected: false},

		// 非法
		{name: "Unrelated cards", cards: "AS 2H 5D", settings: normalRules(), expected: false},
		{name: "Two cards", cards: "AH AS", settings: normalRules(), expected: false},
		{name: "Card and wild", cards: "AH WJ", settings: normalRules(), expected: false},
		{name: "Two wilds", cards: "WJ WJ", settings: normalRules(), expected: false},
		{name: "Two runs", cards: "2S 3S", settings: normalRules(), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, CheckLegal(card.MustParse(tt.cards), tt.settings))
		})
	}
}

func TestRankAndScoreValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code      string
		aceHigh   bool
		wantRank  int
		wantScore int
	}{
		{code: "WJ", wantRank: -1, wantScore: 15},
		{code: "AS", wantRank: 1, wantScore: 1},
		{code: "AS", aceHigh: true, wantRank: 14, wantScore: 11},
		{code: "7H", wantRank: 7, wantScore: 7},
		{code: "10D", wantRank: 10, wantScore: 10},
		{code: "JC", wantRank: 11, wantScore: 10},
		{code: "QC", wantRank: 12, wantScore: 10},
		{code: "KC", wantRank: 13, wantScore: 10},
	}

	for _, tt := range tests {
		s := protocol.DefaultSettings()
		if tt.aceHigh {
			s.AceRank = protocol.AceHigh
		}
		c := card.MustParse(tt.code)[0]
		assert.Equal(t, tt.wantRank, RankValue(c, s), tt.code)
		assert.Equal(t, tt.wantScore, ScoreValue(c, s), tt.code)
	}
}

func TestSortMeld(t *testing.T) {
	t.Parallel()

	s := protocol.DefaultSettings()
	meld := SortMeld(card.MustParse("5S WJ 3S 4S"), s)
	assert.Equal(t, "W★ 3♠ 4♠ 5♠", card.Format(meld))

	set := SortMeld(card.MustParse("AS AH AC AD"), s)
	assert.Equal(t, "A♣ A♦ A♥ A♠", card.Format(set))
}
