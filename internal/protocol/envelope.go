package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope wraps every websocket frame on the display feed.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encode marshals payload into an envelope of the given type.
func Encode(typ string, payload interface{}) (Envelope, error) {
	if payload == nil {
		return Envelope{Type: typ}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", typ, err)
	}
	return Envelope{Type: typ, Payload: data}, nil
}

// MustEncode is like Encode but panics on error. Use it only with payload
// types that always marshal.
func MustEncode(typ string, payload interface{}) Envelope {
	e, err := Encode(typ, payload)
	if err != nil {
		panic(err)
	}
	return e
}

// Decode unmarshals the envelope payload into v.
func (e Envelope) Decode(v interface{}) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("decode %s: empty payload", e.Type)
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("decode %s: %w", e.Type, err)
	}
	return nil
}
