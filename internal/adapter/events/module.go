package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/domainmart/domainmart/internal/config"
)

// Module wires the event publisher. Without configured brokers events are
// discarded so the service can run standalone.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newPublisher(p publisherParams) (Publisher, error) {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("kafka brokers not configured, registration events disabled")
		return NopPublisher{}, nil
	}

	producer, err := NewProducer(p.Config.KafkaBrokers, p.Config.KafkaTopic, p.Logger)
	if err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})
	return producer, nil
}
