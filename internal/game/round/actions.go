package round

import (
	"slices"

	"github.com/palemoky/super-rummy/internal/apperrors"
	"github.com/palemoky/super-rummy/internal/game/card"
	"github.com/palemoky/super-rummy/internal/game/rule"
)

// AssertCurrentTurn 轮到的必须是该玩家本人
func (r *Round) AssertCurrentTurn(playerID string) (*Seat, error) {
	if r.over || !r.started {
		return nil, apperrors.ErrGameNotStart
	}
	seat := r.CurrentSeat()
	if !seat.IsHuman() || seat.ID != playerID {
		return nil, apperrors.ErrNotYourTurn
	}
	return seat, nil
}

// Draw 摸牌：牌堆顶或弃牌堆顶，拿弃牌堆顶的牌本回合不能再弃掉
func (r *Round) Draw(playerID, cardID string) error {
	seat, err := r.AssertCurrentTurn(playerID)
	if err != nil {
		return err
	}
	if r.hasDrawn {
		return apperrors.ErrWrongPhase
	}

	switch {
	case r.deck.Top() != nil && r.deck.Top().ID == cardID:
		r.drawTo(seat, r.deck.Top(), r.deck)
	case r.discard.Top() != nil && r.discard.Top().ID == cardID:
		top := r.discard.Top()
		r.nonDiscardable = top
		r.drawTo(seat, top, r.discard)
	default:
		return apperrors.ErrCardNotFound
	}
	r.checkInvariants()
	return nil
}

// Meld 从手牌亮出一组新牌
func (r *Round) Meld(playerID string, cardIDs []string) error {
	seat, cards, err := r.preparePlay(playerID, cardIDs)
	if err != nil {
		return err
	}
	if !rule.CheckLegal(cards, r.settings) {
		return apperrors.ErrInvalidMeld
	}
	if err := r.checkRemaining(seat, cards); err != nil {
		return err
	}

	r.moveToMeld(rule.SortMeld(cards, r.settings), seat.Hand, len(r.melds), 0)
	r.checkGameOver()
	r.checkInvariants()
	return nil
}

// Lay 把手牌接到第 meldNumber 组牌上
func (r *Round) Lay(playerID string, cardIDs []string, meldNumber int) error {
	seat, cards, err := r.preparePlay(playerID, cardIDs)
	if err != nil {
		return err
	}
	if meldNumber < 0 || meldNumber >= len(r.melds) {
		return apperrors.ErrInvalidMeld
	}
	extended := slices.Concat(r.melds[meldNumber].Cards(), cards)
	if !rule.CheckLegal(extended, r.settings) {
		return apperrors.ErrInvalidMeld
	}
	if err := r.checkRemaining(seat, cards); err != nil {
		return err
	}

	r.moveToMeld(rule.SortMeld(extended, r.settings), seat.Hand, meldNumber, 0)
	r.checkGameOver()
	r.checkInvariants()
	return nil
}

// Discard 弃一张牌，结束自己的回合
func (r *Round) Discard(playerID, cardID string) error {
	seat, err := r.AssertCurrentTurn(playerID)
	if err != nil {
		return err
	}
	if !r.hasDrawn {
		return apperrors.ErrWrongPhase
	}
	c := seat.Hand.Find(cardID)
	if c == nil {
		return apperrors.ErrCardNotFound
	}
	if c == r.nonDiscardable {
		return apperrors.ErrNonDiscardable
	}

	r.moveToDiscard([]*card.Card{c}, seat.Hand)
	if !r.checkGameOver() {
		r.nextTurn()
	}
	r.checkInvariants()
	return nil
}

// RemovePlayer 玩家连接已断开；正轮到他时代为走完并推进
func (r *Round) RemovePlayer(playerID string) {
	if r.over || !r.started {
		return
	}
	seat := r.CurrentSeat()
	if !seat.IsHuman() || seat.ID != playerID {
		return
	}
	r.skipTurn(seat)
	if !r.checkGameOver() {
		r.nextTurn()
	}
	r.checkInvariants()
}

// Abandon 无人获胜，立即结束
func (r *Round) Abandon() {
	if r.started {
		r.end(nil)
	}
}

// preparePlay 亮牌/接牌的共同前置条件：轮到本人、已摸牌、牌都在手里且不重复
func (r *Round) preparePlay(playerID string, cardIDs []string) (*Seat, []*card.Card, error) {
	seat, err := r.AssertCurrentTurn(playerID)
	if err != nil {
		return nil, nil, err
	}
	if !r.hasDrawn {
		return nil, nil, apperrors.ErrWrongPhase
	}
	if len(cardIDs) == 0 {
		return nil, nil, apperrors.ErrInvalidMeld
	}

	cards := make([]*card.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		c := seat.Hand.Find(id)
		if c == nil || slices.Contains(cards, c) {
			return nil, nil, apperrors.ErrCardNotFound
		}
		cards = append(cards, c)
	}
	return seat, cards, nil
}

// checkRemaining 打出 cards 后剩下的手牌还能合法地结束回合
func (r *Round) checkRemaining(seat *Seat, cards []*card.Card) error {
	remaining := seat.Hand.Len() - len(cards)
	if r.settings.RequireEndDiscard && remaining < 1 {
		return apperrors.ErrMustKeepDiscard
	}
	if remaining == 1 && seat.Hand.Contains(r.nonDiscardable) && !slices.Contains(cards, r.nonDiscardable) {
		return apperrors.ErrNonDiscardable
	}
	return nil
}
