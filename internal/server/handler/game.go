package handler

import (
	"github.com/palemoky/super-rummy/internal/game/round"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/types"
)

func (h *Handler) handleDraw(client types.ClientInterface, action *protocol.DrawAction) error {
	return h.lobbies.Play(client, func(r *round.Round) error {
		return r.Draw(client.GetID(), action.CardID)
	})
}

func (h *Handler) handleMeld(client types.ClientInterface, action *protocol.MeldAction) error {
	return h.lobbies.Play(client, func(r *round.Round) error {
		return r.Meld(client.GetID(), action.CardIDs)
	})
}

func (h *Handler) handleLay(client types.ClientInterface, action *protocol.LayAction) error {
	return h.lobbies.Play(client, func(r *round.Round) error {
		return r.Lay(client.GetID(), action.CardIDs, action.MeldNumber)
	})
}

func (h *Handler) handleDiscard(client types.ClientInterface, action *protocol.DiscardAction) error {
	return h.lobbies.Play(client, func(r *round.Round) error {
		return r.Discard(client.GetID(), action.CardID)
	})
}
