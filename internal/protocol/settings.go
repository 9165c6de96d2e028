package protocol

import (
	"encoding/json"
	"fmt"
)

// FirstTurn 首轮出牌顺序
type FirstTurn string

const (
	FirstTurnNextPlayer FirstTurn = "next_player"
	FirstTurnPrevWinner FirstTurn = "prev_winner"
	FirstTurnRandom     FirstTurn = "random"
)

// AceRank A 的大小
type AceRank string

const (
	AceLow  AceRank = "low"
	AceHigh AceRank = "high"
)

// DeckExhaust 牌堆耗尽时的处理方式
type DeckExhaust string

const (
	ExhaustFlipDiscard    DeckExhaust = "flip_discard"
	ExhaustShuffleDiscard DeckExhaust = "shuffle_discard"
	ExhaustEndRound       DeckExhaust = "end_round"
)

// GameSettings 一局的规则配置，开局后不再变化
type GameSettings struct {
	DeckCount             int         `json:"deck_count"`
	EnableJokers          bool        `json:"enable_jokers"`
	HandSize              int         `json:"hand_size"`
	FirstTurn             FirstTurn   `json:"first_turn"`
	AllowDrawChoice       bool        `json:"allow_draw_choice"`
	AllowRunMixedSuit     bool        `json:"allow_run_mixed_suit"`
	AllowSetDuplicateSuit bool        `json:"allow_set_duplicate_suit"`
	LimitMeldSize         *int        `json:"limit_meld_size"` // nil 表示不限制，否则为 3 或 4
	AceRank               AceRank     `json:"ace_rank"`
	DeckExhaust           DeckExhaust `json:"deck_exhaust"`
	RequireEndDiscard     bool        `json:"require_end_discard"`
	LayAtEnd              bool        `json:"lay_at_end"`
}

// DefaultSettings 默认规则
func DefaultSettings() GameSettings {
	return GameSettings{
		DeckCount:             2,
		EnableJokers:          true,
		HandSize:              7,
		FirstTurn:             FirstTurnNextPlayer,
		AllowDrawChoice:       false,
		AllowRunMixedSuit:     false,
		AllowSetDuplicateSuit: true,
		LimitMeldSize:         nil,
		AceRank:               AceLow,
		DeckExhaust:           ExhaustFlipDiscard,
		RequireEndDiscard:     false,
		LayAtEnd:              true,
	}
}

// AceIsHigh A 是否按 14 计
func (s GameSettings) AceIsHigh() bool {
	return s.AceRank == AceHigh
}

// MeldLimit 单组牌的张数上限，0 表示不限制
func (s GameSettings) MeldLimit() int {
	if s.LimitMeldSize == nil {
		return 0
	}
	return *s.LimitMeldSize
}

// WithMeldLimit 返回设置了张数上限的副本，limit 为 0 时取消限制
func (s GameSettings) WithMeldLimit(limit int) GameSettings {
	if limit == 0 {
		s.LimitMeldSize = nil
		return s
	}
	s.LimitMeldSize = &limit
	return s
}

// 牌副数和手牌数的上限，开局前就会按 deck_count 建牌
const (
	MaxDeckCount = 8
	MaxHandSize  = 20
)

// Validate 校验取值范围
func (s GameSettings) Validate() error {
	if s.DeckCount < 1 || s.DeckCount > MaxDeckCount {
		return fmt.Errorf("deck_count must be between 1 and %d, got %d", MaxDeckCount, s.DeckCount)
	}
	if s.HandSize < 1 || s.HandSize > MaxHandSize {
		return fmt.Errorf("hand_size must be between 1 and %d, got %d", MaxHandSize, s.HandSize)
	}
	switch s.FirstTurn {
	case FirstTurnNextPlayer, FirstTurnPrevWinner, FirstTurnRandom:
	default:
		return fmt.Errorf("invalid first_turn %q", s.FirstTurn)
	}
	if s.LimitMeldSize != nil && *s.LimitMeldSize != 3 && *s.LimitMeldSize != 4 {
		return fmt.Errorf("limit_meld_size must be null, 3 or 4, got %d", *s.LimitMeldSize)
	}
	switch s.AceRank {
	case AceLow, AceHigh:
	default:
		return fmt.Errorf("invalid ace_rank %q", s.AceRank)
	}
	switch s.DeckExhaust {
	case ExhaustFlipDiscard, ExhaustShuffleDiscard, ExhaustEndRound:
	default:
		return fmt.Errorf("invalid deck_exhaust %q", s.DeckExhaust)
	}
	return nil
}

var settingsFields = []string{
	"deck_count", "enable_jokers", "hand_size", "first_turn", "allow_draw_choice",
	"allow_run_mixed_suit", "allow_set_duplicate_suit", "limit_meld_size", "ace_rank",
	"deck_exhaust", "require_end_discard", "lay_at_end",
}

// UnmarshalJSON 十二个字段全部必填，类型和枚举值都会校验
func (s *GameSettings) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("settings: expected an object")
	}
	for _, name := range settingsFields {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("settings: missing field %q", name)
		}
	}

	// 使用别名类型避免递归调用
	type plain GameSettings
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	decoded := GameSettings(p)
	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	*s = decoded
	return nil
}
