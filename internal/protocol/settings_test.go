package protocol

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameSettings_DefaultsRoundTrip(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DefaultSettings())
	require.NoError(t, err)

	var decoded GameSettings
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, DefaultSettings(), decoded)
	assert.Contains(t, string(data), `"limit_meld_size":null`)
}

func TestGameSettings_MissingFieldRejected(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DefaultSettings())
	require.NoError(t, err)

	for _, field := range settingsFields {
		t.Run(field, func(t *testing.T) {
			t.Parallel()
			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(data, &raw))
			delete(raw, field)
			stripped, err := json.Marshal(raw)
			require.NoError(t, err)

			var s GameSettings
			err = json.Unmarshal(stripped, &s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestGameSettings_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		replace [2]string
	}{
		{name: "Bad first turn", replace: [2]string{`"next_player"`, `"last_player"`}},
		{name: "Bad ace rank", replace: [2]string{`"low"`, `"middle"`}},
		{name: "Bad deck exhaust", replace: [2]string{`"flip_discard"`, `"burn"`}},
		{name: "Meld limit five", replace: [2]string{`"limit_meld_size":null`, `"limit_meld_size":5`}},
		{name: "Zero decks", replace: [2]string{`"deck_count":2`, `"deck_count":0`}},
		{name: "Too many decks", replace: [2]string{`"deck_count":2`, `"deck_count":100000000`}},
		{name: "Nine decks", replace: [2]string{`"deck_count":2`, `"deck_count":9`}},
		{name: "Zero hand size", replace: [2]string{`"hand_size":7`, `"hand_size":0`}},
		{name: "Huge hand size", replace: [2]string{`"hand_size":7`, `"hand_size":2000000000`}},
		{name: "Hand size 21", replace: [2]string{`"hand_size":7`, `"hand_size":21`}},
		{name: "Bool as string", replace: [2]string{`"lay_at_end":true`, `"lay_at_end":"yes"`}},
		{name: "Fractional hand size", replace: [2]string{`"hand_size":7`, `"hand_size":7.5`}},
	}

	data, err := json.Marshal(DefaultSettings())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			input := strings.Replace(string(data), tt.replace[0], tt.replace[1], 1)
			require.NotEqual(t, string(data), input)

			var s GameSettings
			assert.Error(t, json.Unmarshal([]byte(input), &s))
		})
	}
}

func TestGameSettings_UpperBoundsAccepted(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.DeckCount = MaxDeckCount
	s.HandSize = MaxHandSize
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded GameSettings
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestGameSettings_MeldLimit(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	assert.Equal(t, 0, s.MeldLimit())

	limited := s.WithMeldLimit(4)
	assert.Equal(t, 4, limited.MeldLimit())
	assert.Equal(t, 0, s.MeldLimit(), "original settings must not change")
	assert.Equal(t, 0, limited.WithMeldLimit(0).MeldLimit())
}
