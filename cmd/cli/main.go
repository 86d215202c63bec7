// Command cli submits commands to the command handler's inbound topics.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	infra_eventbus "github.com/amirasaad/commandhandler/infra/eventbus"
	"github.com/amirasaad/commandhandler/pkg/config"
	"github.com/amirasaad/commandhandler/pkg/domain/command"
	"github.com/amirasaad/commandhandler/pkg/eventbus"
	"github.com/google/uuid"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  create <account_type>
  transfer <from> <to> <amount> <token> [description]`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	msg, id, err := buildMessage(cfg.Topics, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	bus, err := infra_eventbus.NewWithKafka(ctx, &infra_eventbus.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		ClientID:     cfg.Kafka.ClientID + "-cli",
		SASLUsername: cfg.Kafka.SASLUsername,
		SASLPassword: cfg.Kafka.SASLPassword,
		TLSEnabled:   cfg.Kafka.TLSEnabled,
		TLSCAFile:    cfg.Kafka.TLSCAFile,
		TLSCertFile:  cfg.Kafka.TLSCertFile,
		TLSKeyFile:   cfg.Kafka.TLSKeyFile,
	}, slog.Default())
	if err != nil {
		return err
	}
	defer func() { _ = bus.Close() }()

	if err := bus.Publish(ctx, msg); err != nil {
		return err
	}
	fmt.Printf("submitted %s to %s\n", id, msg.Topic)
	return nil
}

// buildMessage turns command line arguments into a command message keyed by its id.
func buildMessage(topics *config.Topics, args []string) (eventbus.Message, uuid.UUID, error) {
	if len(args) == 0 {
		return eventbus.Message{}, uuid.Nil, errors.New(usage)
	}
	id := uuid.New()

	var (
		topic   string
		typ     command.Type
		payload any
	)
	switch args[0] {
	case "create":
		if len(args) != 2 {
			return eventbus.Message{}, uuid.Nil, errors.New(usage)
		}
		topic, typ = topics.ConfirmAccountCreation, command.TypeConfirmAccountCreation
		payload = command.ConfirmAccountCreation{CommandID: id, AccountType: args[1]}
	case "transfer":
		if len(args) < 5 || len(args) > 6 {
			return eventbus.Message{}, uuid.Nil, errors.New(usage)
		}
		amount, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return eventbus.Message{}, uuid.Nil, fmt.Errorf("invalid amount %q: %w", args[3], err)
		}
		cmd := command.ConfirmMoneyTransfer{
			CommandID: id,
			From:      args[1],
			To:        args[2],
			Amount:    amount,
			Token:     args[4],
		}
		if len(args) == 6 {
			cmd.Description = args[5]
		}
		topic, typ, payload = topics.ConfirmMoneyTransfer, command.TypeConfirmMoneyTransfer, cmd
	default:
		return eventbus.Message{}, uuid.Nil, fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}

	value, err := eventbus.Encode(typ.String(), payload)
	if err != nil {
		return eventbus.Message{}, uuid.Nil, err
	}
	return eventbus.Message{Topic: topic, Key: []byte(id.String()), Value: value}, id, nil
}
