package clickhouse

import (
	"fmt"
	"strings"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
)

// Options points the client at the candle warehouse. Zero fields take the
// tag defaults.
type Options struct {
	Host     string
	Port     int    `default:"9000"`
	Database string `default:"market"`
	User     string `default:"default"`
	Password string
	// UseHTTP switches from the native protocol to HTTP.
	UseHTTP bool

	MaxOpenConns    int           `default:"10"`
	MaxIdleConns    int           `default:"5"`
	ConnMaxLifetime time.Duration `default:"5m"`
	DialTimeout     time.Duration `default:"5s"`
	ReadTimeout     time.Duration `default:"10s"`
	// MaxExecutionTime is enforced server side per query.
	MaxExecutionTime time.Duration `default:"10s"`
}

func (o Options) native() (*ch.Options, error) {
	host := strings.TrimSpace(o.Host)
	if host == "" {
		return nil, fmt.Errorf("clickhouse: host is required")
	}
	protocol := ch.Native
	if o.UseHTTP {
		protocol = ch.HTTP
	}
	settings := ch.Settings{}
	if secs := int(o.MaxExecutionTime / time.Second); secs > 0 {
		settings["max_execution_time"] = secs
	}
	return &ch.Options{
		Addr:     []string{fmt.Sprintf("%s:%d", host, o.Port)},
		Protocol: protocol,
		Auth: ch.Auth{
			Database: o.Database,
			Username: o.User,
			Password: o.Password,
		},
		Settings:        settings,
		DialTimeout:     o.DialTimeout,
		ReadTimeout:     o.ReadTimeout,
		MaxOpenConns:    o.MaxOpenConns,
		MaxIdleConns:    o.MaxIdleConns,
		ConnMaxLifetime: o.ConnMaxLifetime,
	}, nil
}
