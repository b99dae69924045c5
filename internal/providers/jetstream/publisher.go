package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/fieldhouse/capledger/internal/adapter"
	"github.com/fieldhouse/capledger/internal/domain"
	"github.com/fieldhouse/capledger/internal/logger"
	"github.com/fieldhouse/capledger/internal/messaging"
)

// SubjectRebuildCompleted is the subject rebuild notices are published on
const SubjectRebuildCompleted = "contract.rebuild.completed"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc   adapter.NatsConn
	js   adapter.JetStream
	json adapter.JSON
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &publisher{
		nc:   nc,
		js:   js,
		json: jsonAdapter,
	}, nil
}

// PublishRebuildCompleted publishes a rebuild-completed notice to NATS JetStream
func (p *publisher) PublishRebuildCompleted(ctx context.Context, notice *domain.RebuildNotice) error {
	logger.Debug("Publishing rebuild notice", zap.Any("notice", notice))

	data, err := p.json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal rebuild notice: %w", err)
	}

	_, err = p.js.Publish(ctx, SubjectRebuildCompleted, data)
	if err != nil {
		return fmt.Errorf("failed to publish rebuild notice: %w", err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
