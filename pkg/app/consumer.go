package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/amirasaad/commandhandler/pkg/domain/events"
	"github.com/amirasaad/commandhandler/pkg/eventbus"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleAccountCreation is the subscriber for the account creation topic.
func (a *App) HandleAccountCreation(ctx context.Context, msg eventbus.Message) error {
	return consume(ctx, a, msg, command.TypeConfirmAccountCreation,
		func(c command.ConfirmAccountCreation) uuid.UUID { return c.CommandID },
		a.Creation.Handle,
		nil,
	)
}

// HandleMoneyTransfer is the subscriber for the money transfer topic.
func (a *App) HandleMoneyTransfer(ctx context.Context, msg eventbus.Message) error {
	return consume(ctx, a, msg, command.TypeConfirmMoneyTransfer,
		func(c command.ConfirmMoneyTransfer) uuid.UUID { return c.CommandID },
		a.Transfer.Handle,
		a.Transfer.Published,
	)
}

// consume decodes one command, runs it through the engine and publishes its
// records. Structural problems are returned as eventbus.ErrPoison; every other
// error means the message must be retried. When the records carried balance
// changes, published is told once they are out.
func consume[C any](
	ctx context.Context,
	a *App,
	msg eventbus.Message,
	want command.Type,
	commandID func(C) uuid.UUID,
	decide func(context.Context, C) ([]events.Record, error),
	published func(context.Context, uuid.UUID) error,
) (err error) {
	ctx, span := a.tracer.Start(ctx, "consume "+want.String(),
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	cmd, err := decodeCommand[C](msg, want)
	if err != nil {
		return err
	}
	id := commandID(cmd)
	span.SetAttributes(attribute.String("command.id", id.String()))

	return a.guard.Do(ctx, want.String()+":"+id.String(), func() error {
		records, err := decide(ctx, cmd)
		if err != nil {
			return err
		}
		if len(msg.Key) > 0 {
			for i := range records {
				if records[i].Kind.IsFeedback() {
					records[i].Key = string(msg.Key)
				}
			}
		}
		out, err := a.Router.Route(records)
		if err != nil {
			return fmt.Errorf("app: route records: %w", err)
		}
		if err := a.Deps.Publisher.Publish(ctx, out...); err != nil {
			return fmt.Errorf("app: publish records: %w", err)
		}
		span.SetAttributes(attribute.Int("records.published", len(out)))

		if published != nil && hasBalanceChange(records) {
			// the offset is committed either way; a leftover row only means a
			// later redelivery publishes the same changes again
			if err := published(ctx, id); err != nil {
				a.logger.Warn("failed to mark balance changes published", "command_id", id, "error", err)
			}
		}
		return nil
	})
}

func decodeCommand[C any](msg eventbus.Message, want command.Type) (C, error) {
	var cmd C
	env, err := eventbus.Decode(msg.Value)
	if err != nil {
		return cmd, err
	}
	if env.Type != want.String() {
		return cmd, fmt.Errorf("app: unexpected command type %q on %s: %w", env.Type, msg.Topic, eventbus.ErrPoison)
	}
	if err := json.Unmarshal(env.Payload, &cmd); err != nil {
		return cmd, fmt.Errorf("app: decode %s: %v: %w", want, err, eventbus.ErrPoison)
	}
	if err := command.Validate(&cmd); err != nil {
		return cmd, fmt.Errorf("app: invalid %s: %v: %w", want, err, eventbus.ErrPoison)
	}
	return cmd, nil
}

func hasBalanceChange(records []events.Record) bool {
	for _, r := range records {
		if r.Kind == events.KindBalanceChanged {
			return true
		}
	}
	return false
}
