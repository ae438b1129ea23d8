package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// NewsProvider fetches financial headlines from a NewsAPI-compatible endpoint.
type NewsProvider struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	query    string
	pageSize int
	tracer   trace.Tracer
	limiter  *FeedLimiter
}

// NewNewsProvider creates a provider rate limited to 10 requests per minute.
func NewNewsProvider(baseURL, apiKey, query string, pageSize int, tracer trace.Tracer) *NewsProvider {
	return &NewsProvider{
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  baseURL,
		apiKey:   apiKey,
		query:    query,
		pageSize: pageSize,
		tracer:   tracer,
		limiter:  NewFeedLimiter(10, time.Minute),
	}
}

// FetchHeadlines pulls articles published on or after from.
func (p *NewsProvider) FetchHeadlines(ctx context.Context, from time.Time) ([]Headline, error) {
	_, span := p.tracer.Start(ctx, "newsapi.fetch-headlines")
	defer span.End()

	q := url.Values{}
	q.Set("q", p.query)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", fmt.Sprintf("%d", p.pageSize))
	if !from.IsZero() {
		q.Set("from", from.UTC().Format(time.RFC3339))
	}

	reqURL := fmt.Sprintf("%s/everything?%s", p.baseURL, q.Encode())

	body, err := p.doRequest(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	var raw struct {
		Status   string `json:"status"`
		Message  string `json:"message"`
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			PublishedAt string `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse headlines: %w", err)
	}
	if raw.Status != "ok" {
		return nil, fmt.Errorf("news API status %q: %s", raw.Status, raw.Message)
	}

	headlines := make([]Headline, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		published, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			continue
		}
		headlines = append(headlines, Headline{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: published.UTC(),
		})
	}

	return headlines, nil
}

func (p *NewsProvider) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("news API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
