package handler

import (
	"github.com/palemoky/super-rummy/internal/apperrors"
	"github.com/palemoky/super-rummy/internal/protocol"
	"github.com/palemoky/super-rummy/internal/types"
)

func (h *Handler) handleName(client types.ClientInterface, action *protocol.NameAction) error {
	return h.lobbies.Rename(client, action.Name)
}

func (h *Handler) handleAI(client types.ClientInterface, action *protocol.AIAction) error {
	if action.Action == protocol.AIRemove {
		return h.lobbies.RemoveAI(client)
	}
	return h.lobbies.AddAI(client)
}

func (h *Handler) handleJoin(client types.ClientInterface, action *protocol.JoinAction) error {
	return h.lobbies.Join(client, action.Code)
}

func (h *Handler) handleSettings(client types.ClientInterface, action *protocol.SettingsAction) error {
	return h.lobbies.UpdateSettings(client, action.Settings)
}

// handleStart 维护模式下不再开新局
func (h *Handler) handleStart(client types.ClientInterface) error {
	if h.server != nil && h.server.IsMaintenanceMode() {
		return apperrors.ErrMaintenance
	}
	return h.lobbies.Start(client)
}
