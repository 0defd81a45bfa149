package events

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/IBM/sarama"

	"viralengine/types"
)

// Publisher emits project lifecycle events to Kafka so downstream consumers
// (publishing bots, dashboards) can react without polling the API.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects a synchronous producer to the given brokers.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &Publisher{producer: producer, topic: topic}, nil
}

// PublishStatus sends one project status, keyed by project id so events for
// the same project stay ordered within a partition.
func (p *Publisher) PublishStatus(status types.ProjectStatus) error {
	b, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(status.ProjectID),
		Value: sarama.ByteEncoder(b),
	})
	if err != nil {
		return fmt.Errorf("failed to publish status event: %w", err)
	}
	return nil
}

// Close shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}

// BrokersFromEnv parses the Kafka broker list from the environment.
func BrokersFromEnv() []string {
	brokers := os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
	if brokers == "" {
		brokers = "localhost:9093"
	}
	return strings.Split(brokers, ",")
}

// TopicFromEnv returns the Kafka topic for project events.
func TopicFromEnv() string {
	topic := os.Getenv("KAFKA_TOPIC_PROJECT_EVENTS")
	if topic == "" {
		topic = "video-project-events"
	}
	return topic
}
