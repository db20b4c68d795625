package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/lostpets/internal/platform/logger"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Subjects published by the stores.
const (
	SubjectSessionLogin    = "lostpets.session.login"
	SubjectSessionLogout   = "lostpets.session.logout"
	SubjectSessionExpired  = "lostpets.session.expired"
	SubjectProfileUpdated  = "lostpets.session.profile_updated"
	SubjectListingCreated  = "lostpets.listing.created"
	SubjectListingUpdated  = "lostpets.listing.updated"
	SubjectListingDeleted  = "lostpets.listing.deleted"
	SubjectListingFiltered = "lostpets.listing.filtered"
)

var tracer = otel.Tracer("lostpets/events")

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Nop drops every event. Used when neither NATS_URL nor AMQP_URL is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, interface{}) error { return nil }

type NATSPublisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

func NewNATSPublisher(url string, log *logger.Logger, appName string) (*NATSPublisher, error) {
	log.Info("NATS Publisher: connecting...", zap.String("url", url))

	opts := []nats.Option{
		nats.Name(fmt.Sprintf("%s NATS Publisher", appName)),
		nats.Timeout(10 * time.Second),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	log.Info("NATS Publisher: successfully connected", zap.String("url", conn.ConnectedUrl()))

	return &NATSPublisher{conn: conn, logger: log.Named("NATSPublisher")}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	ctx, span := tracer.Start(ctx, "NATS.Publish."+subject)
	defer span.End()

	payload, err := json.Marshal(data)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal data for subject %s: %w", subject, err)
	}

	msg := nats.NewMsg(subject)
	msg.Data = payload
	otel.GetTextMapPropagator().Inject(ctx, HeaderCarrier(msg.Header))

	if err := p.conn.PublishMsg(msg); err != nil {
		p.logger.Error("failed to publish event", zap.String("subject", subject), zap.Error(err))
		span.RecordError(err)
		return fmt.Errorf("failed to publish message to subject %s: %w", subject, err)
	}
	p.logger.Debug("event published", zap.String("subject", subject), zap.Int("data_size_bytes", len(payload)))
	return nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.Error("failed to drain NATS connection", zap.Error(err))
	}
	p.conn.Close()
}

// HeaderCarrier adapts nats.Header to the OpenTelemetry propagation carrier.
type HeaderCarrier nats.Header

func (c HeaderCarrier) Get(key string) string { return nats.Header(c).Get(key) }

func (c HeaderCarrier) Set(key, value string) { nats.Header(c).Set(key, value) }

func (c HeaderCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}
