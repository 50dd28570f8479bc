package backtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"MoverScan/internal/domain/models"
	domsvc "MoverScan/internal/domain/service"
	"MoverScan/pkg/config"
	xhttp "MoverScan/pkg/http"
)

const runPath = "/backtest"

// HTTPBacktester relays backtest requests to the external engine.
type HTTPBacktester struct {
	baseURL  string
	attempts int
	backoff  time.Duration
	client   *xhttp.Client
}

func New(cfg config.BacktestConfig) *HTTPBacktester {
	return &HTTPBacktester{
		baseURL:  strings.TrimRight(cfg.ServiceURL, "/"),
		attempts: cfg.Attempts,
		backoff:  50 * time.Millisecond,
		client:   xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
	}
}

// Run posts the series to the engine and relays its report. The decoded body
// is also kept verbatim in Raw.
func (b *HTTPBacktester) Run(ctx context.Context, req models.BacktestRequest) (models.BacktestResult, error) {
	var body []byte
	if err := b.postJSONWithRetry(ctx, runPath, req, &body); err != nil {
		return models.BacktestResult{}, err
	}
	var res models.BacktestResult
	if err := json.Unmarshal(body, &res); err != nil {
		return models.BacktestResult{}, fmt.Errorf("decode backtest result: %w", err)
	}
	if err := json.Unmarshal(body, &res.Raw); err != nil {
		res.Raw = nil
	}
	if res.Strategy == "" {
		res.Strategy = req.Strategy
	}
	if res.Symbol == "" {
		res.Symbol = req.Symbol
	}
	if res.Timeframe == "" {
		res.Timeframe = req.Timeframe
	}
	return res, nil
}

func (b *HTTPBacktester) postJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	if b.baseURL == "" {
		return errors.New("backtest service url not configured")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    b.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

// postJSONWithRetry retries transport failures and 5xx responses with a
// linear backoff. Client errors are returned at once.
func (b *HTTPBacktester) postJSONWithRetry(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	attempts := b.attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		err = b.postJSON(ctx, path, payload, dest)
		if err == nil || !retryable(err) || i == attempts {
			return err
		}
		select {
		case <-time.After(time.Duration(i) * b.backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func retryable(err error) bool {
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled)
}

var _ domsvc.Backtester = (*HTTPBacktester)(nil)
