package repository

import (
	"context"
	"fmt"

	"MoverScan/internal/domain/models"
	domrepo "MoverScan/internal/domain/repository"
)

// producer is the slice of pkg/kafka.Producer the publisher needs.
type producer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaEventPublisher implements EventPublisher on Kafka topics. Movers are
// keyed by session and news by query.
type KafkaEventPublisher struct {
	producer    producer
	moversTopic string
	newsTopic   string
}

func NewKafkaEventPublisher(p producer, moversTopic, newsTopic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: p, moversTopic: moversTopic, newsTopic: newsTopic}
}

func (p *KafkaEventPublisher) PublishMovers(ctx context.Context, res *models.MoversResult) error {
	if err := p.producer.Publish(ctx, p.moversTopic, []byte(res.Session), res); err != nil {
		return fmt.Errorf("publish movers %s: %w", res.RunID, err)
	}
	return nil
}

func (p *KafkaEventPublisher) PublishNews(ctx context.Context, res *models.NewsResult) error {
	if err := p.producer.Publish(ctx, p.newsTopic, []byte(res.Query), res); err != nil {
		return fmt.Errorf("publish news %q: %w", res.Query, err)
	}
	return nil
}

func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopPublisher drops every event. It is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishMovers(context.Context, *models.MoversResult) error { return nil }
func (NoopPublisher) PublishNews(context.Context, *models.NewsResult) error     { return nil }
func (NoopPublisher) Close() error                                              { return nil }

var (
	_ domrepo.EventPublisher = (*KafkaEventPublisher)(nil)
	_ domrepo.EventPublisher = NoopPublisher{}
	_ domrepo.CandleProvider = (*WarehouseCandles)(nil)
)
