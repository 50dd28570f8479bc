package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/segmentio/kafka-go"
)

// WriterConfig describes how result events are written. Zero fields fall
// back to the tag defaults.
type WriterConfig struct {
	Brokers      []string
	RequiredAcks int           `default:"1"`
	Compression  string        `default:"snappy"`
	MaxAttempts  int           `default:"3"`
	WriteTimeout time.Duration `default:"10s"`
	ReadTimeout  time.Duration `default:"10s"`
	BatchSize    int           `default:"100"`
	BatchBytes   int           `default:"1048576"`
	Linger       time.Duration `default:"100ms"`
	Async        bool
	// KeyOrdered sends equal keys to the same partition.
	KeyOrdered bool
}

var codecs = map[string]kafka.Compression{
	"gzip":   kafka.Gzip,
	"snappy": kafka.Snappy,
	"lz4":    kafka.Lz4,
	"zstd":   kafka.Zstd,
}

func (c *WriterConfig) normalize() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("kafka writer defaults: %w", err)
	}
	brokers := make([]string, 0, len(c.Brokers))
	for _, b := range c.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	c.Brokers = brokers
	if len(c.Brokers) == 0 {
		return fmt.Errorf("kafka writer: brokers are required")
	}
	c.Compression = strings.ToLower(c.Compression)
	if _, ok := codecs[c.Compression]; !ok {
		return fmt.Errorf("kafka writer: unknown compression %q", c.Compression)
	}
	return nil
}

func (c WriterConfig) balancer() kafka.Balancer {
	if c.KeyOrdered {
		return &kafka.Hash{}
	}
	return &kafka.LeastBytes{}
}
