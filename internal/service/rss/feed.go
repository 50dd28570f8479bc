package rss

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MoverScan/internal/domain/models"
	drepo "MoverScan/internal/domain/repository"
	xhttp "MoverScan/pkg/http"
	"MoverScan/pkg/util"
)

const (
	GoogleName = "google"
	YahooName  = "yahoo"

	defaultGoogleURL = "https://news.google.com"
	defaultYahooURL  = "https://feeds.finance.yahoo.com"
)

var _ drepo.NewsFeed = (*Feed)(nil)

// Feed is a NewsFeed over an RSS endpoint.
type Feed struct {
	name      string
	publisher string
	buildURL  func(query string) (string, map[string][]string)
	http      *xhttp.Client
}

// NewGoogle returns the Google News search feed.
func NewGoogle(baseURL string, timeout time.Duration) *Feed {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultGoogleURL
	}
	return &Feed{
		name: GoogleName,
		buildURL: func(query string) (string, map[string][]string) {
			return base + "/rss/search", map[string][]string{
				"q":    {query},
				"hl":   {"en-US"},
				"gl":   {"US"},
				"ceid": {"US:en"},
			}
		},
		http: xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithBrowserHeaders()),
	}
}

// NewYahoo returns the Yahoo Finance headline feed. The query is used as a
// ticker symbol.
func NewYahoo(baseURL string, timeout time.Duration) *Feed {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultYahooURL
	}
	return &Feed{
		name:      YahooName,
		publisher: "Yahoo Finance",
		buildURL: func(query string) (string, map[string][]string) {
			return base + "/rss/2.0/headline", map[string][]string{
				"s":      {strings.ToUpper(query)},
				"region": {"US"},
				"lang":   {"en-US"},
			}
		},
		http: xhttp.NewClient(xhttp.WithTimeout(timeout), xhttp.WithBrowserHeaders()),
	}
}

func (f *Feed) Name() string { return f.name }

// FetchNews implements drepo.NewsFeed.
func (f *Feed) FetchNews(ctx context.Context, query string) ([]models.NewsItem, error) {
	url, params := f.buildURL(query)
	var body []byte
	err := f.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         url,
		QueryParams: params,
		Headers:     map[string]string{"Accept": "application/rss+xml, application/xml, text/xml"},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("%s rss: %w", f.name, err)
	}

	items := Parse(body)
	out := make([]models.NewsItem, 0, len(items))
	for _, it := range items {
		out = append(out, normalize(it, f.name, f.publisher))
	}
	return out, nil
}

// normalize maps an RSS item. Aggregator titles end in " - Publisher"; that
// suffix is moved into Publisher so titles from different feeds compare equal.
func normalize(it Item, source, defaultPublisher string) models.NewsItem {
	title, publisher := it.Title, it.Source.Name
	switch {
	case publisher != "" && strings.HasSuffix(title, " - "+publisher):
		title = strings.TrimSuffix(title, " - "+publisher)
	case publisher == "" && source == GoogleName:
		if i := strings.LastIndex(title, " - "); i > 0 {
			title, publisher = title[:i], title[i+3:]
		}
	}
	if publisher == "" {
		publisher = defaultPublisher
	}
	return models.NewsItem{
		Title:       strings.TrimSpace(title),
		URL:         it.Link,
		Publisher:   strings.TrimSpace(publisher),
		PublishedAt: util.UnixMilliOrZero(it.PubDate),
		Source:      source,
	}
}
