package broker

import (
	"context"
	"sync"

	"fractional-market/internal/pkg/errs"
	"fractional-market/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrNacked = errs.New("broker nacked message")

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Confirm(noWait bool) error
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error)
}

// RabbitPublisher sends outbox messages to a durable topic exchange with
// publisher confirms, so a message is only marked sent once the broker owns it.
type RabbitPublisher struct {
	mu       sync.Mutex
	ch       Channel
	exchange string
}

// NewRabbitPublisher declares the exchange once at startup.
func NewRabbitPublisher(ch Channel, exchange string) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, errs.Wrapf(err, "declare exchange %q", exchange)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, errs.Wrap(err, "enable confirm mode")
	}

	return &RabbitPublisher{ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, msg shared.OutboxMessage) error {
	// a channel is not safe for concurrent publishes in confirm mode
	p.mu.Lock()
	defer p.mu.Unlock()

	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(
		ctx,
		p.exchange,
		msg.Topic, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID.String(),
			Type:         msg.Topic,
			Body:         msg.Payload,
		},
	)
	if err != nil {
		return errs.Wrapf(err, "publish %s", msg.Topic)
	}
	if confirm == nil {
		// confirm mode is off; nothing to wait for
		return nil
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return errs.Wrapf(err, "wait for confirm of %s", msg.ID)
	}
	if !acked {
		return errs.Wrapf(ErrNacked, "message %s", msg.ID)
	}
	return nil
}

var _ shared.EventPublisher = (*RabbitPublisher)(nil)
