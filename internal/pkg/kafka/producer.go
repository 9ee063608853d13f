package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	SendMessage(message interface{}) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer подключается к брокеру и готовит топик. Без доступной Kafka
// возвращается mock, передающий сообщения напрямую в fallback.
func NewProducer(brokers string, topic string, fallback func(message []byte)) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logrus.Infof("Kafka producer configured for brokers: %s", brokers)

	// Проверяем подключение и создаем топик
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", brokers)
	if err != nil {
		logrus.Warnf("Kafka connection failed: %v", err)
		logrus.Warn("Using mock producer instead")
		return &mockProducer{fallback: fallback}
	}
	defer conn.Close()

	// Создаем топик если не существует
	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}

	err = conn.CreateTopics(topicConfigs...)
	if err != nil {
		logrus.Warnf("Could not create topic (might already exist): %v", err)
	} else {
		logrus.Infof("Created topic: %s", topic)
	}

	logrus.Infof("Connected to Kafka at %s", brokers)
	return &kafkaProducer{writer: writer, topic: topic}
}

func (p *kafkaProducer) SendMessage(message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte("render-worker"),
		Value: messageBytes,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, msg)
	if err != nil {
		logrus.Errorf("Failed to write message to Kafka: %v", err)
		return err
	}

	logrus.Infof("Message successfully sent to topic: %s", p.topic)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// Mock producer для работы без Kafka
type mockProducer struct {
	fallback func(message []byte)
}

// NewMockProducer отдаёт сообщения сразу в fallback, минуя брокер
func NewMockProducer(fallback func(message []byte)) Producer {
	return &mockProducer{fallback: fallback}
}

func (m *mockProducer) SendMessage(message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	if m.fallback == nil {
		logrus.Infof("MOCK: dropping message: %s", messageBytes)
		return nil
	}

	m.fallback(messageBytes)
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}
