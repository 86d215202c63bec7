// Package eventbus defines the transport contracts between the event log and the
// command handler: inbound messages, outbound messages, and the JSON envelope
// carried in both directions.
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrPoison marks a message that can never be processed. Subscribers log it,
// optionally forward it to a dead-letter topic, and commit past it.
var ErrPoison = errors.New("poison message")

// Message is a record read from or written to a topic.
type Message struct {
	Topic     string
	Key       []byte
	Value     []byte
	Partition int
	Offset    int64
}

// HandlerFunc processes one inbound message. A nil error lets the subscriber
// commit the offset; an error wrapping ErrPoison skips the message; any other
// error makes the subscriber retry the same message.
type HandlerFunc func(ctx context.Context, msg Message) error

// Publisher writes messages to their topics. Messages sharing a key land on
// the same partition in the order given.
type Publisher interface {
	Publish(ctx context.Context, msgs ...Message) error
}

// Subscriber consumes a topic until ctx is cancelled.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler HandlerFunc) error
}

// Envelope is the wire wrapper for every message: a type tag plus the JSON payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Encode wraps payload into an envelope tagged with typ.
func Encode(typ string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("eventbus: marshal payload: %w", err)
	}
	out, err := json.Marshal(Envelope{Type: typ, Payload: data})
	if err != nil {
		return nil, fmt.Errorf("eventbus: marshal envelope: %w", err)
	}
	return out, nil
}

// Decode unwraps raw into an envelope. Malformed input is reported as ErrPoison.
func Decode(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: envelope: %v", ErrPoison, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrPoison)
	}
	return &env, nil
}
