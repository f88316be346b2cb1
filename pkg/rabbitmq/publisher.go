package rabbitmq

import (
	"context"
	"encoding/json"

	"streaming-service/config"
	"streaming-service/dto"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const (
	exchangeName       = "video_events_exchange"
	routingKeyUploaded = "video.uploaded"
	routingKeyDeleted  = "video.deleted"
)

// Publisher emits video lifecycle events for downstream consumers
// (transcoders, indexers). Delivery is fire-and-forget from the caller's
// perspective; callers log failures and move on.
type Publisher interface {
	PublishVideoUploaded(ctx context.Context, msg dto.VideoEventMessage) error
	PublishVideoDeleted(ctx context.Context, msg dto.VideoEventMessage) error
}

type publisher struct {
	conn *amqp.Connection
	cfg  *config.RabbitMQ
}

func NewPublisher(conn *amqp.Connection, cfg *config.RabbitMQ) Publisher {
	return &publisher{
		conn: conn,
		cfg:  cfg,
	}
}

func (p *publisher) PublishVideoUploaded(ctx context.Context, msg dto.VideoEventMessage) error {
	return p.publish(ctx, routingKeyUploaded, msg)
}

func (p *publisher) PublishVideoDeleted(ctx context.Context, msg dto.VideoEventMessage) error {
	return p.publish(ctx, routingKeyDeleted, msg)
}

func (p *publisher) publish(ctx context.Context, routingKey string, msg dto.VideoEventMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(exchangeName, p.cfg.Kind, true, false, false, false, nil)
	if err != nil {
		zerolog.Ctx(ctx).Error().Str("exchange", exchangeName).Msg("failed to declare exchange")
		return err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Str("routing_key", routingKey).
		Str("video_id", msg.VideoID.String()).
		Msg("published video event")
	return nil
}
