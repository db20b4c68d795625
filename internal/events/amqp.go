package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const DefaultExchange = "lostpets.events"

// AMQPPublisher sends store events to a RabbitMQ topic exchange, using the
// subject as the routing key.
type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *logger.Logger
}

func NewAMQPPublisher(url, exchange string, log *logger.Logger) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	log.Info("AMQP Publisher: connected", zap.String("exchange", exchange))
	return &AMQPPublisher{conn: conn, channel: ch, exchange: exchange, logger: log.Named("AMQPPublisher")}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	ctx, span := tracer.Start(ctx, "AMQP.Publish."+subject)
	defer span.End()

	payload, err := json.Marshal(data)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal data for subject %s: %w", subject, err)
	}

	headers := amqp.Table{}
	otel.GetTextMapPropagator().Inject(ctx, TableCarrier(headers))

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = p.channel.PublishWithContext(ctx, p.exchange, subject, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Headers:      headers,
		Body:         payload,
	})
	if err != nil {
		p.logger.Error("failed to publish event", zap.String("subject", subject), zap.Error(err))
		span.RecordError(err)
		return fmt.Errorf("failed to publish message to %s: %w", subject, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() {
	if err := p.channel.Close(); err != nil {
		p.logger.Warn("failed to close AMQP channel", zap.Error(err))
	}
	if err := p.conn.Close(); err != nil {
		p.logger.Warn("failed to close AMQP connection", zap.Error(err))
	}
}

// TableCarrier adapts amqp.Table headers to the OpenTelemetry propagation carrier.
type TableCarrier amqp.Table

func (c TableCarrier) Get(key string) string {
	v, _ := c[key].(string)
	return v
}

func (c TableCarrier) Set(key, value string) { c[key] = value }

func (c TableCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
