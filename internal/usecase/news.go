package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"MoverScan/internal/domain/models"
	domrepo "MoverScan/internal/domain/repository"
	"MoverScan/internal/middleware"
	"MoverScan/internal/services/batch"
	"MoverScan/internal/services/newsmerge"
	applogger "MoverScan/pkg/logger"
	"MoverScan/pkg/metrics"
)

// NewsUseCase fans a query out to every feed and merges the headlines.
type NewsUseCase struct {
	feeds     []*middleware.GuardedNews
	publisher domrepo.EventPublisher
	metrics   domrepo.Metrics
	logger    *applogger.Logger
	now       func() time.Time
}

func NewNewsUseCase(feeds []*middleware.GuardedNews, publisher domrepo.EventPublisher, m domrepo.Metrics, logger *applogger.Logger) *NewsUseCase {
	if m == nil {
		m = metrics.Nop{}
	}
	if logger == nil {
		logger = applogger.Nop()
	}
	return &NewsUseCase{feeds: feeds, publisher: publisher, metrics: m, logger: logger, now: time.Now}
}

// Search returns at most limit deduplicated headlines, newest first. Feeds
// that fail are listed in Errors and do not affect the others.
func (uc *NewsUseCase) Search(ctx context.Context, query string, limit int) (*models.NewsResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	start := time.Now()

	tasks := make([]batch.Task[[]models.NewsItem], 0, len(uc.feeds))
	for _, f := range uc.feeds {
		f := f
		tasks = append(tasks, batch.Task[[]models.NewsItem]{
			Name: f.Name(),
			Run: func(ctx context.Context) ([]models.NewsItem, error) {
				items, attempt := f.News(ctx, query)
				if len(items) == 0 && attempt.Error != "" {
					return nil, errors.New(attempt.Error)
				}
				return items, nil
			},
		})
	}
	outcomes := batch.Settle(ctx, tasks)

	res := &models.NewsResult{
		Query:     query,
		Items:     newsmerge.Merge(outcomes, limit),
		FetchedAt: uc.now().UTC(),
	}
	for _, o := range outcomes {
		if o.OK() {
			continue
		}
		if res.Errors == nil {
			res.Errors = make(map[string]string)
		}
		res.Errors[o.Name] = o.Err.Error()
	}

	uc.metrics.RecordLatency("news", time.Since(start).Seconds())
	if uc.publisher != nil {
		if err := uc.publisher.PublishNews(ctx, res); err != nil {
			uc.metrics.RecordError("publish")
			uc.logger.Warn("publish news failed", applogger.String("query", query), applogger.Error(err))
		}
	}
	return res, nil
}
