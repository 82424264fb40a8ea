package messaging

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/streadway/amqp"
)

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQPublisher publishes to a topic exchange with the event name as
// routing key, so consumers bind to order.created or order.*.
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  amqpChannel
	exchange string
}

var _ ports.EventPublisher = (*RabbitMQPublisher)(nil)

func NewRabbitMQPublisher(channel amqpChannel, exchange string) *RabbitMQPublisher {
	return &RabbitMQPublisher{channel: channel, exchange: exchange}
}

// DialRabbitMQ connects and declares exchange as a durable topic exchange.
func DialRabbitMQ(url, exchange string) (*RabbitMQPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	p := NewRabbitMQPublisher(channel, exchange)
	p.conn = conn
	return p, nil
}

func (p *RabbitMQPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
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

		err = p.channel.Publish(
			p.exchange,
			event.EventName(),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    event.AggregateID().String(),
				Timestamp:    event.OccurredAt(),
				Type:         event.EventName(),
				Body:         body,
			},
		)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("publish %s: %w", event.EventName(), err))
		}
	}
	return errs
}

func (p *RabbitMQPublisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
