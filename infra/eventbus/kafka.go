package eventbus

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/commandhandler/pkg/eventbus"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// KafkaConfig holds configuration for the Kafka bus.
type KafkaConfig struct {
	Brokers       []string
	GroupID       string
	ClientID      string
	BatchTimeout  time.Duration
	Retry         RetryPolicy
	DLQSuffix     string
	SASLUsername  string
	SASLPassword  string
	TLSEnabled    bool
	TLSCAFile     string
	TLSCertFile   string
	TLSKeyFile    string
	TLSSkipVerify bool
}

// KafkaBus publishes with one shared writer and consumes each topic with its
// own consumer-group reader.
type KafkaBus struct {
	brokers []string
	writer  *kafka.Writer
	dialer  *kafka.Dialer
	config  *KafkaConfig
	logger  *slog.Logger
}

// NewWithKafka creates a Kafka bus and checks that the first broker is reachable.
func NewWithKafka(ctx context.Context, config *KafkaConfig, logger *slog.Logger) (*KafkaBus, error) {
	if config == nil {
		return nil, fmt.Errorf("kafka bus: config is required")
	}
	brokers := parseBrokers(config.Brokers)
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka bus: brokers are required")
	}
	if config.GroupID == "" {
		config.GroupID = "command-handler"
	}
	if logger == nil {
		logger = slog.Default()
	}

	dialer, transport, err := newKafkaDialer(config)
	if err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           config.BatchTimeout,
	}
	if transport != nil {
		writer.Transport = transport
	}

	bus := &KafkaBus{
		brokers: brokers,
		writer:  writer,
		dialer:  dialer,
		config:  config,
		logger:  logger.With("bus", "kafka"),
	}

	if err := bus.ping(ctx); err != nil {
		_ = bus.Close()
		return nil, err
	}

	logger.Info("🚀 Kafka bus initialized",
		"group_id", config.GroupID,
		"brokers", brokers,
		"tls_enabled", dialer.TLS != nil,
		"sasl_enabled", dialer.SASLMechanism != nil,
	)
	return bus, nil
}

// Close flushes and closes the writer.
func (b *KafkaBus) Close() error {
	if b == nil || b.writer == nil {
		return nil
	}
	return b.writer.Close()
}

// Publish writes msgs synchronously. Messages with the same key keep their order.
func (b *KafkaBus) Publish(ctx context.Context, msgs ...eventbus.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]kafka.Message, 0, len(msgs))
	now := time.Now()
	for _, m := range msgs {
		out = append(out, kafka.Message{
			Topic: m.Topic,
			Key:   m.Key,
			Value: m.Value,
			Time:  now,
		})
	}
	if err := b.writer.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("kafka bus: publish failed: %w", err)
	}
	return nil
}

// Subscribe consumes topic until ctx is cancelled. An offset is committed
// only after handler accepted the message or skipped it as poison.
func (b *KafkaBus) Subscribe(ctx context.Context, topic string, handler eventbus.HandlerFunc) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     b.brokers,
		GroupID:     b.config.GroupID,
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     1 * time.Second,
		Dialer:      b.dialer,
	})
	defer func() { _ = reader.Close() }()

	log := b.logger.With("topic", topic)
	log.Info("consumer started", "group_id", b.config.GroupID)

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error("kafka consume error", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(500 * time.Millisecond):
			}
			continue
		}

		in := eventbus.Message{
			Topic:     msg.Topic,
			Key:       msg.Key,
			Value:     msg.Value,
			Partition: msg.Partition,
			Offset:    msg.Offset,
		}
		if err := deliver(ctx, log, b.config.Retry, in, handler, b.publishToDLQ); err != nil {
			// shutting down; the uncommitted offset is redelivered
			return nil
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error("kafka commit error", "error", err, "partition", msg.Partition, "offset", msg.Offset)
		}
	}
}

// EnsureTopics creates topics that do not exist yet.
func (b *KafkaBus) EnsureTopics(ctx context.Context, topics ...string) error {
	conn, err := b.dialer.DialContext(ctx, "tcp", b.brokers[0])
	if err != nil {
		return fmt.Errorf("kafka bus: dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("kafka bus: controller lookup failed: %w", err)
	}
	ctrl, err := b.dialer.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("kafka bus: dial controller failed: %w", err)
	}
	defer func() { _ = ctrl.Close() }()

	configs := make([]kafka.TopicConfig, 0, len(topics))
	for _, t := range topics {
		if strings.TrimSpace(t) == "" {
			continue
		}
		configs = append(configs, kafka.TopicConfig{
			Topic:             t,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
	}
	if err := ctrl.CreateTopics(configs...); err != nil && !isTopicAlreadyExists(err) {
		return fmt.Errorf("kafka bus: create topics failed: %w", err)
	}
	return nil
}

func (b *KafkaBus) publishToDLQ(ctx context.Context, msg eventbus.Message, cause error) error {
	if b.config.DLQSuffix == "" {
		return nil
	}
	dlqTopic := msg.Topic + b.config.DLQSuffix
	err := b.writer.WriteMessages(ctx, kafka.Message{
		Topic: dlqTopic,
		Key:   msg.Key,
		Value: msg.Value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "error", Value: []byte(cause.Error())},
			{Key: "source_offset", Value: []byte(strconv.FormatInt(msg.Offset, 10))},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka bus: dlq publish failed: %w", err)
	}
	b.logger.Warn("message sent to DLQ", "topic", msg.Topic, "dlq_topic", dlqTopic, "offset", msg.Offset)
	return nil
}

func (b *KafkaBus) ping(ctx context.Context) error {
	conn, err := b.dialer.DialContext(ctx, "tcp", b.brokers[0])
	if err != nil {
		return fmt.Errorf("kafka bus: connection failed: %w", err)
	}
	_ = conn.Close()
	return nil
}

func newKafkaDialer(config *KafkaConfig) (*kafka.Dialer, *kafka.Transport, error) {
	tlsConfig, err := buildKafkaTLSConfig(config)
	if err != nil {
		return nil, nil, err
	}
	saslMechanism, err := buildKafkaSASLMechanism(config)
	if err != nil {
		return nil, nil, err
	}

	dialer := &kafka.Dialer{
		Timeout:       5 * time.Second,
		ClientID:      config.ClientID,
		TLS:           tlsConfig,
		SASLMechanism: saslMechanism,
	}

	if tlsConfig == nil && saslMechanism == nil {
		return dialer, nil, nil
	}

	transport := &kafka.Transport{
		ClientID: config.ClientID,
		TLS:      tlsConfig,
		SASL:     saslMechanism,
	}
	return dialer, transport, nil
}

func buildKafkaTLSConfig(config *KafkaConfig) (*tls.Config, error) {
	// Only honor TLS when explicitly enabled
	if !config.TLSEnabled {
		return nil, nil
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: config.TLSSkipVerify,
	}

	caFile := strings.TrimSpace(config.TLSCAFile)
	if caFile != "" {
		caBytes, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("kafka bus: read tls ca file: %w", err)
		}
		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caBytes) {
			return nil, fmt.Errorf("kafka bus: invalid tls ca file")
		}
		tlsConfig.RootCAs = caPool
	}

	certFile := strings.TrimSpace(config.TLSCertFile)
	keyFile := strings.TrimSpace(config.TLSKeyFile)
	if certFile != "" || keyFile != "" {
		if certFile == "" || keyFile == "" {
			return nil, fmt.Errorf("kafka bus: tls cert and key are required")
		}
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			return nil, fmt.Errorf("kafka bus: load tls key pair: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func buildKafkaSASLMechanism(config *KafkaConfig) (sasl.Mechanism, error) {
	username := strings.TrimSpace(config.SASLUsername)
	password := strings.TrimSpace(config.SASLPassword)
	if username == "" && password == "" {
		return nil, nil
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("kafka bus: sasl username and password are required")
	}
	return plain.Mechanism{
		Username: username,
		Password: password,
	}, nil
}

func isTopicAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, kafka.TopicAlreadyExists) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Topic with this name already exists") ||
		strings.Contains(msg, "TOPIC_ALREADY_EXISTS") ||
		strings.Contains(msg, "TopicAlreadyExists")
}

func parseBrokers(brokers []string) []string {
	out := make([]string, 0, len(brokers))
	for _, entry := range brokers {
		for _, p := range strings.Split(entry, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

var (
	_ eventbus.Publisher  = (*KafkaBus)(nil)
	_ eventbus.Subscriber = (*KafkaBus)(nil)
)
