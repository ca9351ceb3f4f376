package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/bardlex/minegate/pkg/circuit"
	gwErrors "github.com/bardlex/minegate/pkg/errors"
	"github.com/bardlex/minegate/pkg/log"
	"github.com/bardlex/minegate/pkg/retry"
)

// mockWriter records written messages and fails the first failN writes
type mockWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	failN    int
	calls    int
	closed   bool
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.calls <= w.failN {
		return errors.New("connection refused")
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *mockWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func newTestClient(writer *mockWriter) *KafkaClient {
	client := NewKafkaClient([]string{"localhost:9092"}, log.Nop())
	client.newWriter = func(string) messageWriter { return writer }
	client.retryPolicy = retry.Policy{
		Attempts: 3,
		Initial:  time.Millisecond,
		Max:      5 * time.Millisecond,
		Factor:   2,
	}
	return client
}

func TestNewKafkaClient(t *testing.T) {
	brokers := []string{"localhost:9092"}

	client := NewKafkaClient(brokers, log.Nop())

	if client == nil {
		t.Fatal("NewKafkaClient returned nil")
	}

	if len(client.brokers) != 1 || client.brokers[0] != "localhost:9092" {
		t.Errorf("Expected brokers [localhost:9092], got %v", client.brokers)
	}

	if client.writers == nil {
		t.Error("Writers map should not be nil")
	}

	if client.retryPolicy.Attempts != retry.Publish().Attempts {
		t.Errorf("Expected publish retry policy, got %+v", client.retryPolicy)
	}
	if state := client.circuitBreaker.State(); state != circuit.StateClosed {
		t.Errorf("Expected closed breaker, got %s", state)
	}
}

func TestKafkaClient_GetProducer(t *testing.T) {
	client := NewKafkaClient([]string{"localhost:9092"}, log.Nop())

	topic := "test-topic"

	// First call should create a new producer
	producer1 := client.GetProducer(topic)
	if producer1 == nil {
		t.Fatal("GetProducer returned nil")
	}

	writer, ok := producer1.(*kafka.Writer)
	if !ok {
		t.Fatalf("Expected *kafka.Writer, got %T", producer1)
	}
	if writer.Topic != topic {
		t.Errorf("Expected topic %s, got %s", topic, writer.Topic)
	}
	if _, ok := writer.Balancer.(*kafka.Hash); !ok {
		t.Errorf("Expected key-hash balancer, got %T", writer.Balancer)
	}

	// Second call should return the same producer (cached)
	producer2 := client.GetProducer(topic)
	if producer1 != producer2 {
		t.Error("Expected same producer instance from cache")
	}

	if len(client.writers) != 1 {
		t.Errorf("Expected 1 writer in map, got %d", len(client.writers))
	}
}

func TestKafkaClient_PublishJSON_RetriesTransientFailure(t *testing.T) {
	writer := &mockWriter{failN: 1}
	client := newTestClient(writer)

	err := client.PublishJSON(context.Background(), "events", "s-1", []byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("PublishJSON() error = %v", err)
	}

	if writer.calls != 2 {
		t.Errorf("Expected 2 write attempts, got %d", writer.calls)
	}
	if len(writer.messages) != 1 || string(writer.messages[0].Key) != "s-1" {
		t.Errorf("Unexpected messages: %+v", writer.messages)
	}
}

func TestKafkaClient_PublishJSON_GivesUp(t *testing.T) {
	writer := &mockWriter{failN: 10}
	client := newTestClient(writer)

	err := client.PublishJSON(context.Background(), "events", "s-1", []byte(`{}`))
	if err == nil {
		t.Fatal("Expected error after retries")
	}
	if !gwErrors.IsType(err, gwErrors.ErrorTypeKafka) {
		t.Errorf("Expected kafka error, got %v", gwErrors.TypeOf(err))
	}
	if writer.calls != 3 {
		t.Errorf("Expected 3 write attempts, got %d", writer.calls)
	}
}

func TestEventPublisher_PublishEvent(t *testing.T) {
	writer := &mockWriter{}
	publisher := NewEventPublisher(newTestClient(writer), "")

	if publisher.Topic() != TopicEvents {
		t.Errorf("Expected default topic %s, got %s", TopicEvents, publisher.Topic())
	}

	event := &MiningEvent{
		Type:      EventPaused,
		SessionID: "s-1",
		StateFile: "state_s-1.bin",
	}
	if err := publisher.PublishEvent(context.Background(), event); err != nil {
		t.Fatalf("PublishEvent() error = %v", err)
	}

	if len(writer.messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(writer.messages))
	}

	var decoded map[string]any
	if err := json.Unmarshal(writer.messages[0].Value, &decoded); err != nil {
		t.Fatalf("message is not JSON: %v", err)
	}
	if decoded["type"] != "paused" || decoded["session_id"] != "s-1" || decoded["state_file"] != "state_s-1.bin" {
		t.Errorf("Unexpected payload: %v", decoded)
	}
	if _, ok := decoded["nonce"]; ok {
		t.Error("empty nonce should be omitted")
	}
	if event.OccurredAt.IsZero() {
		t.Error("OccurredAt should be stamped")
	}
}

func TestKafkaClient_HealthWithoutBrokers(t *testing.T) {
	client := NewKafkaClient(nil, log.Nop())
	if err := client.Health(context.Background()); err == nil {
		t.Error("Health() should fail without brokers")
	}
}

func TestKafkaClient_Close(t *testing.T) {
	writer := &mockWriter{}
	client := newTestClient(writer)

	_ = client.GetProducer("topic1")

	if err := client.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
	if !writer.closed {
		t.Error("Expected producer to be closed")
	}
	if len(client.writers) != 0 {
		t.Errorf("Expected 0 writers after close, got %d", len(client.writers))
	}
}

func BenchmarkKafkaClient_GetProducer(b *testing.B) {
	client := NewKafkaClient([]string{"localhost:9092"}, log.Nop())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = client.GetProducer("test-topic")
	}
}
