package rule

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/protocol"
)

func aiRules() protocol.GameSettings {
	s := protocol.DefaultSettings()
	s.AllowSetDuplicateSuit = false
	s.RequireEndDiscard = false
	return s
}

func discardRequiredRules() protocol.GameSettings {
	s := aiRules()
	s.RequireEndDiscard = true
	return s
}

// sortedFaces 与顺序无关的比较键
func sortedFaces(cards []*card.Card) string {
	cloned := slices.Clone(cards)
	return card.Format(SortMeld(cloned, protocol.DefaultSettings()))
}

func meldKeys(melds [][]*card.Card) []string {
	keys := make([]string, len(melds))
	for i, m := range melds {
		keys[i] = sortedFaces(m)
	}
	return keys
}

func expectedKeys(codes ...string) []string {
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = sortedFaces(card.MustParse(code))
	}
	return keys
}

func TestCanWinWith(t *testing.T) {
	t.Parallel()

	fourAces := card.MustParse("AH AD AC AS")
	threeAces := card.MustParse("AH AD AC")

	assert.True(t, CanWinWith(fourAces, 4, aiRules()))
	assert.True(t, CanWinWith(fourAces, 4, discardRequiredRules()))
	assert.True(t, CanWinWith(threeAces, 4, aiRules()))
	assert.False(t, CanWinWith(threeAces, 4, discardRequiredRules()))
	assert.False(t, CanWinWith(threeAces, 5, aiRules()))
	assert.True(t, CanWinWith(threeAces, 3, discardRequiredRules()))
}

func TestFindMelds(t *testing.T) {
	t.Parallel()

	hand := card.MustParse("AH AD AC AS 9D 3S 4S 5S WJ")
	melds := FindMelds(hand, aiRules(), nil)

	assert.ElementsMatch(t, expectedKeys(
		"AH AD AC AS",
		"AS WJ 3S 4S 5S",
		"3S 4S 5S",
		"4S 5S WJ",
	), meldKeys(melds))

	// 非百搭张数多的优先，其次百搭少的优先
	for i := 1; i < len(melds); i++ {
		prev, cur := NonWildCount(melds[i-1]), NonWildCount(melds[i])
		require.GreaterOrEqual(t, prev, cur)
		if prev == cur {
			assert.LessOrEqual(t, len(melds[i-1])-prev, len(melds[i])-cur)
		}
	}
	assert.Equal(t, sortedFaces(card.MustParse("AH AD AC AS")), sortedFaces(melds[0]))
	for _, m := range melds {
		assert.True(t, CheckLegal(m, aiRules()))
	}
}

func TestFindMelds_BothSetVariants(t *testing.T) {
	t.Parallel()

	hand := card.MustParse("AH AD AC AS 9D 3S 4S 5S WJ")
	melds := FindMelds(hand, dupSetRules(), nil)

	assert.ElementsMatch(t, expectedKeys(
		"AH AD AC AS",
		"AH AD AC AS WJ",
		"AS WJ 3S 4S 5S",
		"3S 4S 5S",
		"4S 5S WJ",
	), meldKeys(melds))
	assert.Equal(t, sortedFaces(card.MustParse("AH AD AC AS")), sortedFaces(melds[0]))
}

func TestFindMelds_Wild(t *testing.T) {
	t.Parallel()

	melds := FindMelds(card.MustParse("AH WJ WJ WJ"), aiRules(), nil)
	assert.Equal(t, expectedKeys("AH WJ WJ", "WJ WJ WJ"), meldKeys(melds))
}

func TestFindMelds_AllWild(t *testing.T) {
	t.Parallel()

	melds := FindMelds(card.MustParse("WJ WJ WJ WJ"), aiRules(), nil)
	assert.Equal(t, expectedKeys("WJ WJ WJ", "WJ WJ WJ WJ"), meldKeys(melds))
}

func TestFindMelds_RequireEndDiscardKeepsOne(t *testing.T) {
	t.Parallel()

	hand := card.MustParse("5H 6H 7H")
	assert.Len(t, FindMelds(hand, aiRules(), nil), 1)
	assert.Empty(t, FindMelds(hand, discardRequiredRules(), nil))
}

func TestFindMelds_Excluded(t *testing.T) {
	t.Parallel()

	hand := card.MustParse("5H 6H 7H KS")
	assert.Len(t, FindMelds(hand, aiRules(), nil), 1)
	assert.Empty(t, FindMelds(hand, aiRules(), hand[3]), "must not strand the excluded card")
	assert.Len(t, FindMelds(hand, aiRules(), hand[0]), 1)
}

func TestFindMelds_LimitMeldSize(t *testing.T) {
	t.Parallel()

	hand := card.MustParse("3S 4S 5S 6S 7S")
	for _, m := range FindMelds(hand, aiRules().WithMeldLimit(3), nil) {
		assert.Len(t, m, 3)
	}
	assert.Nil(t, FindNextMeld(card.MustParse("3S 9H KD"), aiRules(), nil))
}

func TestFindRuns_AceHigh(t *testing.T) {
	t.Parallel()

	s := aceHighRules()
	runs := FindRuns(card.MustParse("QS AS KS"), s)
	require.NotEmpty(t, runs)
	assert.Equal(t, "Q♠ K♠ A♠", card.Format(runs[0]))
}
