package messaging

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/Shopify/sarama"
)

// KafkaPublisher sends each event to one topic keyed by aggregate id, so
// the events of an order stay ordered within a partition.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(producer sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

// DialKafka creates a synchronous producer that waits for the leader's ack.
func DialKafka(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return producer, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var errs error
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return errors.Join(errs, err)
		}

		body, err := encode(event)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(event.AggregateID().String()),
			Value: sarama.ByteEncoder(body),
			Headers: []sarama.RecordHeader{
				{Key: []byte("event"), Value: []byte(event.EventName())},
			},
		})
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("send %s: %w", event.EventName(), err))
		}
	}
	return errs
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
