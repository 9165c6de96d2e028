package round

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/palemoky/super-rummy/internal/game/ai"
	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/game/rule"
	"github.com/palemoky/super-rummy/internal/protocol"
)

// notifyTurnState 广播当前座位和回合阶段
func (r *Round) notifyTurnState() {
	state := protocol.TurnDraw
	if r.hasDrawn {
		state = protocol.TurnPlay
	}
	r.broadcast(&protocol.TurnEvent{PlayerID: r.CurrentSeat().ID, State: state})
}

// nextTurn 推进到下一个需要真人操作的回合
//
// 电脑座位当场走完；已断线的真人座位代为摸一张、随机弃一张。
func (r *Round) nextTurn() {
	for !r.over {
		if !r.advance() {
			return
		}
		if !r.autoPlay() {
			return
		}
	}
}

// advance 检查人数、必要时重建牌堆，然后把回合交给下一个座位
func (r *Round) advance() bool {
	connected, bots := 0, 0
	for _, seat := range r.seats {
		switch {
		case !seat.IsHuman():
			bots++
		case r.host.IsConnected(seat.ID):
			connected++
		}
	}
	if connected == 0 || connected+bots < 2 {
		r.log.Info("👋 在线玩家不足，结束对局")
		r.end(nil)
		return false
	}

	if r.deck.Len() == 0 && !r.redeck() {
		return false
	}

	r.turn = (r.turn + 1) % len(r.seats)
	r.hasDrawn = false
	r.nonDiscardable = nil
	r.notifyTurnState()
	return true
}

// autoPlay 当前座位不需要等待真人时代为走完，返回是否应继续推进
func (r *Round) autoPlay() bool {
	seat := r.CurrentSeat()
	switch {
	case !seat.IsHuman():
		r.takeAITurn(seat)
	case !r.host.IsConnected(seat.ID):
		r.skipTurn(seat)
	default:
		return false
	}
	return !r.checkGameOver()
}

func (r *Round) takeAITurn(seat *Seat) {
	turn := ai.TakeTurn(&aiTable{r: r, seat: seat})
	r.log.WithField("seat", seat.Name).Debugf("🤖 摸牌=%s 拿弃牌=%v 亮牌=%d 接牌=%d 弃牌=%v",
		turn.Drawn, turn.TookDiscard, turn.Melds, turn.Lays, turn.Discarded)
}

// skipTurn 替断线的玩家走完回合：没摸牌就摸牌堆顶，再随机弃一张能弃的牌
func (r *Round) skipTurn(seat *Seat) {
	if !r.hasDrawn {
		if top := r.deck.Top(); top != nil {
			r.drawTo(seat, top, r.deck)
		} else if top := r.discard.Top(); top != nil {
			r.drawTo(seat, top, r.discard)
			r.nonDiscardable = top
		}
	}

	candidates := slices.DeleteFunc(seat.Hand.Cards(), func(c *card.Card) bool {
		return c == r.nonDiscardable
	})
	if len(candidates) == 0 {
		return
	}
	r.moveToDiscard([]*card.Card{candidates[rand.IntN(len(candidates))]}, seat.Hand)
}

// drawTo 把一张牌摸进手牌的排序位置
func (r *Round) drawTo(seat *Seat, c *card.Card, from *card.Stack) {
	r.moveToHand([]*card.Card{c}, from, seat, card.HandPosition(seat.Hand.Cards(), c, r.settings.AceIsHigh()))
	r.hasDrawn = true
	r.notifyTurnState()
}

// redeck 牌堆摸空后用弃牌堆重建牌堆
//
// 规则为直接结束或弃牌堆不足两张时结束本局并返回 false。
func (r *Round) redeck() bool {
	if r.settings.DeckExhaust == protocol.ExhaustEndRound || r.discard.Len() < 2 {
		r.log.Info("🃏 牌堆耗尽，结束对局")
		r.end(nil)
		return false
	}

	r.deck.Insert(r.discard.Take(), 0)
	switch r.settings.DeckExhaust {
	case protocol.ExhaustShuffleDiscard:
		r.deck.Reshuffle()
	default:
		r.deck.Reverse()
		r.deck.RegenerateIDs()
	}
	r.broadcast(&protocol.RedeckEvent{NewCardIDs: r.deck.IDs()})
	r.log.Infof("🔄 弃牌堆重建牌堆，%d 张", r.deck.Len())

	r.moveToDiscard([]*card.Card{r.deck.Top()}, r.deck)
	return true
}

// checkGameOver 有座位手牌打完（真人优先）就结束本局
func (r *Round) checkGameOver() bool {
	for _, seat := range r.seats {
		if seat.Hand.Len() == 0 {
			r.end(seat)
			return true
		}
	}
	return false
}

// end 结束本局：按规则替输家接牌、结算手牌分、通知所有真人，然后注销对局并回调大厅
func (r *Round) end(winner *Seat) {
	if r.over {
		return
	}
	r.over = true

	if winner != nil && r.settings.LayAtEnd {
		for _, seat := range r.seats {
			if seat != winner {
				r.layRemaining(seat)
			}
		}
	}

	result := Result{
		Code:       r.Code(),
		HandValues: make(map[string]int, len(r.seats)),
		Names:      make(map[string]string, len(r.seats)),
		EndedAt:    time.Now(),
	}
	for _, seat := range r.seats {
		result.HandValues[seat.ID] = rule.HandValue(seat.Hand.Cards(), r.settings)
		result.Names[seat.ID] = seat.Name
	}

	event := &protocol.EndEvent{HandValues: result.HandValues}
	if winner != nil {
		result.WinnerID = winner.ID
		id := winner.ID
		event.WinnerID = &id
		r.log.Infof("🏆 %s 获胜", winner.Name)
	}
	r.broadcast(event)

	r.result = &result
	r.registry.remove(r.Code())
	r.host.RoundEnded(result)
}

// layRemaining 把手牌中能接到桌面牌组上的牌都接上去
func (r *Round) layRemaining(seat *Seat) {
	for laid := true; laid; {
		laid = false
		for _, c := range seat.Hand.Cards() {
			lays := rule.FindLays(c, r.meldCards(), r.settings, false)
			if len(lays) == 0 {
				continue
			}
			r.layCard(seat, c, lays[0])
			laid = true
			break
		}
	}
}

// layCard 把一张手牌接到第 meld 组，整组按规则重新排序后放回
func (r *Round) layCard(seat *Seat, c *card.Card, meld int) {
	extended := append(r.melds[meld].Cards(), c)
	r.moveToMeld(rule.SortMeld(extended, r.settings), seat.Hand, meld, 0)
}

// checkInvariants 牌数守恒、每组牌都合法，否则说明状态已损坏
func (r *Round) checkInvariants() {
	total := r.deck.Len() + r.discard.Len()
	for _, seat := range r.seats {
		total += seat.Hand.Len()
	}
	for i, m := range r.melds {
		total += m.Len()
		if !rule.CheckLegal(m.Cards(), r.settings) {
			panic(fmt.Sprintf("round %s: meld %d is illegal: %s", r.Code(), i, card.Format(m.Cards())))
		}
	}
	if total != r.totalCards {
		panic(fmt.Sprintf("round %s: card count drifted from %d to %d", r.Code(), r.totalCards, total))
	}
}
