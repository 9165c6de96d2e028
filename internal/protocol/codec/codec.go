// Package codec converts actions and events to and from their flat JSON form,
// where a "type" field selects the variant and the remaining fields are the payload.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/palemoky/super-rummy/internal/apperrors"
	"github.com/palemoky/super-rummy/internal/protocol"
)

type envelope struct {
	Type string `json:"type"`
}

// DecodeAction validates the discriminator, then decodes the variant payload.
// Every failure wraps protocol.ErrMalformedAction.
func DecodeAction(data []byte) (protocol.Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformedAction, err)
	}
	action := protocol.NewAction(protocol.ActionType(env.Type))
	if action == nil {
		return nil, fmt.Errorf("%w: unknown type %q", protocol.ErrMalformedAction, env.Type)
	}
	if err := checkRequired(data, protocol.RequiredFields[action.Type()]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", protocol.ErrMalformedAction, env.Type, err)
	}
	if err := json.Unmarshal(data, action); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", protocol.ErrMalformedAction, env.Type, err)
	}
	if v, ok := action.(protocol.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", protocol.ErrMalformedAction, env.Type, err)
		}
	}
	return action, nil
}

// DecodeEvent is the client-side counterpart of DecodeAction.
func DecodeEvent(data []byte) (protocol.Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", protocol.ErrMalformedEvent, err)
	}
	event := protocol.NewEvent(protocol.EventType(env.Type))
	if event == nil {
		return nil, fmt.Errorf("%w: unknown type %q", protocol.ErrMalformedEvent, env.Type)
	}
	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", protocol.ErrMalformedEvent, env.Type, err)
	}
	return event, nil
}

// EncodeEvent flattens the event payload next to its "type" field.
func EncodeEvent(event protocol.Event) ([]byte, error) {
	return encode(string(event.Type()), event)
}

// EncodeAction flattens the action payload next to its "type" field.
func EncodeAction(action protocol.Action) ([]byte, error) {
	return encode(string(action.Type()), action)
}

// MustEncodeEvent panics on failure; every event type marshals cleanly.
func MustEncodeEvent(event protocol.Event) []byte {
	data, err := EncodeEvent(event)
	if err != nil {
		panic(err)
	}
	return data
}

// NewErrorEvent converts a rejected action into the event reported to its sender.
func NewErrorEvent(err error) *protocol.ErrorEvent {
	var gameErr *apperrors.GameError
	if errors.As(err, &gameErr) {
		return &protocol.ErrorEvent{Code: gameErr.Code, Message: gameErr.Message}
	}
	if errors.Is(err, protocol.ErrMalformedAction) {
		return &protocol.ErrorEvent{Code: protocol.ErrCodeInvalidMsg, Message: protocol.ErrorMessages[protocol.ErrCodeInvalidMsg]}
	}
	return &protocol.ErrorEvent{Code: protocol.ErrCodeUnknown, Message: protocol.ErrorMessages[protocol.ErrCodeUnknown]}
}

func encode(typ string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", typ, err)
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("encode %s: payload is not an object", typ)
	}

	buf := GetBuffer()
	defer PutBuffer(buf)

	buf.WriteString(`{"type":`)
	typeJSON, _ := json.Marshal(typ)
	buf.Write(typeJSON)
	if len(body) > 2 {
		buf.WriteByte(',')
	}
	buf.Write(body[1:])

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func checkRequired(data []byte, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, f := range fields {
		if _, ok := raw[f]; !ok {
			return fmt.Errorf("missing field %q", f)
		}
	}
	return nil
}
