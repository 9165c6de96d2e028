// Package round 一局游戏的状态机
//
// Round 持有牌堆、弃牌堆、桌面牌组和所有座位，所有改动都通过 move.go 中的移动原语完成，
// 移动原语在"移出"和"放入"之间按每位观看者的可见性广播 move 事件。
//
// Round 不加锁：同一局的所有操作（包括连续的电脑回合）由调用方（大厅）串行执行。
package round

import (
	"cmp"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/palemoky/super-rummy/internal/apperrors"
	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/types"
)

// SeatKind 座位类型
type SeatKind int

const (
	SeatHuman SeatKind = iota
	SeatAI
)

// Seat 一个座位：真人（连接）或电脑（档案），各自一手牌
type Seat struct {
	Kind   SeatKind
	ID     string
	Name   string
	Client types.ClientInterface // 仅真人座位
	Hand   *card.Stack
}

// HumanSeat 真人座位
func HumanSeat(client types.ClientInterface) *Seat {
	return &Seat{Kind: SeatHuman, ID: client.GetID(), Name: client.GetName(), Client: client, Hand: card.NewStack()}
}

// AISeat 电脑座位
func AISeat(id, name string) *Seat {
	return &Seat{Kind: SeatAI, ID: id, Name: name, Hand: card.NewStack()}
}

// IsHuman 是否为真人
func (s *Seat) IsHuman() bool {
	return s.Kind == SeatHuman
}

// Host 对局所在的大厅
type Host interface {
	Code() string
	// IsConnected 该真人玩家的连接是否还在
	IsConnected(playerID string) bool
	// RoundEnded 本局结束后回调，此时对局已从注册表移除
	RoundEnded(result Result)
}

// Result 一局的结算
type Result struct {
	Code       string            `json:"code"`
	WinnerID   string            `json:"winner_id,omitempty"` // 空表示无人获胜
	HandValues map[string]int    `json:"hand_values"`
	Names      map[string]string `json:"names"`
	EndedAt    time.Time         `json:"ended_at"`
}

// Round 一局游戏
type Round struct {
	host     Host
	registry *Registry
	settings protocol.GameSettings
	log      *log.Entry

	deck    *card.Stack
	discard *card.Stack
	melds   []*card.Stack
	seats   []*Seat // 真人在前，电脑在后

	turn           int
	hasDrawn       bool
	nonDiscardable *card.Card

	totalCards int
	started    bool
	over       bool
	result     *Result
}

// Option 创建对局的可选项
type Option func(*Round)

// WithDeck 使用指定的牌堆（最后一张为顶），用于复现固定牌序
func WithDeck(cards []*card.Card) Option {
	return func(r *Round) {
		r.deck = card.NewStack(cards...)
	}
}

// New 创建对局，座位按真人在前、电脑在后的顺序排列
func New(host Host, registry *Registry, settings protocol.GameSettings, seats []*Seat, opts ...Option) *Round {
	ordered := slices.Clone(seats)
	slices.SortStableFunc(ordered, func(a, b *Seat) int {
		return cmp.Compare(a.Kind, b.Kind)
	})

	r := &Round{
		host:     host,
		registry: registry,
		settings: settings,
		log:      log.WithField("lobby", host.Code()),
		discard:  card.NewStack(),
		seats:    ordered,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.deck == nil {
		r.deck = card.NewStack(card.NewDeck(settings.DeckCount, settings.EnableJokers)...)
	}
	return r
}

// Code 所属大厅代码
func (r *Round) Code() string {
	return r.host.Code()
}

// Settings 本局规则
func (r *Round) Settings() protocol.GameSettings {
	return r.settings
}

// IsOver 是否已结束
func (r *Round) IsOver() bool {
	return r.over
}

// Result 结算，未结束时为 nil
func (r *Round) Result() *Result {
	return r.result
}

// CurrentSeat 当前回合的座位
func (r *Round) CurrentSeat() *Seat {
	return r.seats[r.turn]
}

// HasDrawn 当前座位本回合是否已摸牌
func (r *Round) HasDrawn() bool {
	return r.hasDrawn
}

// Seats 所有座位（副本）
func (r *Round) Seats() []*Seat {
	return slices.Clone(r.seats)
}

// Seat 按 ID 查找座位
func (r *Round) Seat(id string) *Seat {
	for _, s := range r.seats {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Start 注册对局、通知所有真人、发牌，然后进入第一个回合
func (r *Round) Start() error {
	if r.started {
		return apperrors.ErrGameStarted
	}
	if r.deck.Len() < len(r.seats)*r.settings.HandSize+1 {
		return apperrors.ErrDeckTooSmall
	}
	if err := r.registry.add(r); err != nil {
		return err
	}
	r.started = true
	r.totalCards = r.deck.Len()

	ids := r.deck.IDs()
	for _, viewer := range r.humans() {
		players := make([]protocol.ClientPlayer, len(r.seats))
		for i, seat := range r.seats {
			players[i] = protocol.ClientPlayer{
				Name:  seat.Name,
				ID:    seat.ID,
				Hand:  r.projectHand(seat, viewer),
				Human: seat.IsHuman(),
			}
		}
		viewer.Client.SendEvent(&protocol.StartEvent{
			Players:         players,
			CurrentPlayerID: viewer.ID,
			CardIDs:         ids,
			GameCode:        r.Code(),
			Settings:        r.settings,
		})
	}
	r.log.Infof("🎮 对局开始，%d 个座位，%d 张牌", len(r.seats), r.totalCards)

	r.deal()
	r.notifyTurnState()
	if r.autoPlay() {
		r.nextTurn()
	}
	r.checkInvariants()
	return nil
}

// deal 轮流给每个座位发 hand_size 张牌，然后翻一张到弃牌堆
func (r *Round) deal() {
	aceHigh := r.settings.AceIsHigh()
	for range r.settings.HandSize {
		for _, seat := range r.seats {
			c := r.deck.Top()
			r.moveToHand([]*card.Card{c}, r.deck, seat, card.HandPosition(seat.Hand.Cards(), c, aceHigh))
		}
	}
	r.moveToDiscard([]*card.Card{r.deck.Top()}, r.deck)
}

func (r *Round) humans() []*Seat {
	humans := make([]*Seat, 0, len(r.seats))
	for _, s := range r.seats {
		if s.IsHuman() {
			humans = append(humans, s)
		}
	}
	return humans
}

// broadcast 发给所有真人座位
func (r *Round) broadcast(event protocol.Event) {
	for _, seat := range r.humans() {
		seat.Client.SendEvent(event)
	}
}

// meldCards 桌面牌组（副本）
func (r *Round) meldCards() [][]*card.Card {
	out := make([][]*card.Card, len(r.melds))
	for i, m := range r.melds {
		out[i] = m.Cards()
	}
	return out
}
