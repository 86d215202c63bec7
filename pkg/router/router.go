// Package router dispatches engine records to their output topics.
package router

import (
	"fmt"

	"github.com/amirasaad/commandhandler/pkg/domain/events"
	"github.com/amirasaad/commandhandler/pkg/eventbus"
)

// Topics binds each output channel to a topic name.
type Topics struct {
	CreationFeedback string
	TransferFeedback string
	BalanceChanged   string
}

// Router maps records onto outbound messages by their kind.
type Router struct {
	topics map[events.Channel]string
}

// New creates a Router for the given topic bindings.
func New(t Topics) *Router {
	return &Router{topics: map[events.Channel]string{
		events.ChannelCreationFeedback: t.CreationFeedback,
		events.ChannelTransferFeedback: t.TransferFeedback,
		events.ChannelBalanceChange:    t.BalanceChanged,
	}}
}

// Topic returns the topic a record of the given kind is published to.
func (r *Router) Topic(kind events.Kind) (string, error) {
	topic, ok := r.topics[kind.Channel()]
	if !ok || topic == "" {
		return "", fmt.Errorf("router: no topic for kind %q", kind)
	}
	return topic, nil
}

// Route encodes records into messages, preserving their order.
func (r *Router) Route(records []events.Record) ([]eventbus.Message, error) {
	msgs := make([]eventbus.Message, 0, len(records))
	for _, rec := range records {
		topic, err := r.Topic(rec.Kind)
		if err != nil {
			return nil, err
		}
		payload, err := rec.Payload()
		if err != nil {
			return nil, err
		}
		value, err := eventbus.Encode(rec.Kind.String(), payload)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, eventbus.Message{
			Topic: topic,
			Key:   []byte(rec.Key),
			Value: value,
		})
	}
	return msgs, nil
}
