// Package messaging publishes minegate session events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/bardlex/minegate/pkg/circuit"
	"github.com/bardlex/minegate/pkg/errors"
	"github.com/bardlex/minegate/pkg/log"
	"github.com/bardlex/minegate/pkg/retry"
)

// messageWriter is the subset of *kafka.Writer the client needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaClient wraps kafka-go with per-topic producer pooling
type KafkaClient struct {
	brokers        []string
	logger         *log.Logger
	writers        map[string]messageWriter
	writersMu      sync.RWMutex
	newWriter      func(topic string) messageWriter
	circuitBreaker *circuit.Breaker
	retryPolicy    retry.Policy
}

// NewKafkaClient creates a new Kafka client. No connection is made until
// the first publish.
func NewKafkaClient(brokers []string, logger *log.Logger) *KafkaClient {
	k := &KafkaClient{
		brokers:     brokers,
		logger:      logger.WithComponent("kafka"),
		writers:     make(map[string]messageWriter),
		retryPolicy: retry.Publish(),
	}

	cbConfig := circuit.DefaultConfig("kafka")
	cbConfig.OpenTimeout = 15 * time.Second
	cbConfig.OnStateChange = func(name string, from, to circuit.State) {
		k.logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
	}
	k.circuitBreaker = circuit.New(cbConfig)
	k.newWriter = k.kafkaWriter
	return k
}

func (k *KafkaClient) kafkaWriter(topic string) messageWriter {
	return &kafka.Writer{
		Addr:                   kafka.TCP(k.brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  false,
		BatchSize:              100,
		BatchTimeout:           10 * time.Millisecond,
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
	}
}

// GetProducer gets or creates the producer for a topic
func (k *KafkaClient) GetProducer(topic string) messageWriter {
	k.writersMu.RLock()
	if writer, exists := k.writers[topic]; exists {
		k.writersMu.RUnlock()
		return writer
	}
	k.writersMu.RUnlock()

	k.writersMu.Lock()
	defer k.writersMu.Unlock()

	// Double-check after acquiring write lock
	if writer, exists := k.writers[topic]; exists {
		return writer
	}

	writer := k.newWriter(topic)
	k.writers[topic] = writer
	k.logger.Info("created Kafka producer", "topic", topic)
	return writer
}

// PublishJSON publishes a pre-encoded JSON payload
func (k *KafkaClient) PublishJSON(ctx context.Context, topic, key string, data []byte) error {
	return k.circuitBreaker.Execute(ctx, func(ctx context.Context) error {
		return retry.Do(ctx, k.retryPolicy, func(ctx context.Context) error {
			writer := k.GetProducer(topic)
			kafkaMsg := kafka.Message{
				Key:   []byte(key),
				Value: data,
				Time:  time.Now(),
			}

			if err := writer.WriteMessages(ctx, kafkaMsg); err != nil {
				return errors.Wrap(err, errors.ErrorTypeKafka, "publish_json",
					"failed to publish JSON message to Kafka").
					WithContext("topic", topic).
					WithContext("key", key).
					WithContext("message_size", len(data))
			}

			k.logger.Debug("published JSON message", "topic", topic, "key", key, "size", len(data))
			return nil
		})
	})
}

// Health dials the first reachable broker
func (k *KafkaClient) Health(ctx context.Context) error {
	if len(k.brokers) == 0 {
		return errors.New(errors.ErrorTypeKafka, "health", "no Kafka brokers configured")
	}

	var lastErr error
	for _, broker := range k.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		_ = conn.Close()
		return nil
	}
	return errors.Wrap(lastErr, errors.ErrorTypeKafka, "health", "no Kafka broker reachable").
		WithContext("brokers", k.brokers)
}

// Close closes all producers
func (k *KafkaClient) Close() error {
	k.writersMu.Lock()
	defer k.writersMu.Unlock()

	var lastErr error
	for topic, writer := range k.writers {
		if err := writer.Close(); err != nil {
			k.logger.Error("failed to close producer", "topic", topic, "error", err)
			lastErr = err
		}
	}

	k.writers = make(map[string]messageWriter)
	return lastErr
}

// EventPublisher sends MiningEvent records to a fixed topic
type EventPublisher struct {
	client *KafkaClient
	topic  string
}

// NewEventPublisher binds client to topic
func NewEventPublisher(client *KafkaClient, topic string) *EventPublisher {
	if topic == "" {
		topic = TopicEvents
	}
	return &EventPublisher{client: client, topic: topic}
}

// PublishEvent encodes event as JSON and publishes it keyed by session id
func (p *EventPublisher) PublishEvent(ctx context.Context, event *MiningEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "encode_event",
			"failed to encode mining event").
			WithContext("type", string(event.Type))
	}

	return p.client.PublishJSON(ctx, p.topic, event.SessionID, data)
}

// Topic returns the destination topic
func (p *EventPublisher) Topic() string {
	return p.topic
}
