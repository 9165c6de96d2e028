package apperrors

import (
	"github.com/palemoky/super-rummy/internal/protocol"
)

// GameError 前置条件不满足（大厅和对局共享），只回复给发起操作的连接
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

func newError(code int) *GameError {
	return &GameError{Code: code, Message: protocol.ErrorMessages[code]}
}

// 预定义错误
var (
	ErrInvalidName      = newError(protocol.ErrCodeInvalidName)
	ErrLobbyNotFound    = newError(protocol.ErrCodeLobbyNotFound)
	ErrLobbyFull        = newError(protocol.ErrCodeLobbyFull)
	ErrGameStarted      = newError(protocol.ErrCodeGameStarted)
	ErrNotEnoughPlayers = newError(protocol.ErrCodeNotEnoughPlayers)
	ErrNoAIPlayer       = newError(protocol.ErrCodeNoAIPlayer)
	ErrDeckTooSmall     = newError(protocol.ErrCodeDeckTooSmall)
	ErrGameNotStart     = newError(protocol.ErrCodeGameNotStart)
	ErrNotYourTurn      = newError(protocol.ErrCodeNotYourTurn)
	ErrInvalidMeld      = newError(protocol.ErrCodeInvalidMeld)
	ErrWrongPhase       = newError(protocol.ErrCodeWrongPhase)
	ErrCardNotFound     = newError(protocol.ErrCodeCardNotFound)
	ErrNonDiscardable   = newError(protocol.ErrCodeNonDiscardable)
	ErrMustKeepDiscard  = newError(protocol.ErrCodeMustKeepDiscard)
	ErrMaintenance      = newError(protocol.ErrCodeServerMaintenance)
)
