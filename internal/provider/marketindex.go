package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// MarketIndexProvider fetches daily closing values for an index or ETF
// from a Yahoo Finance chart-compatible endpoint.
type MarketIndexProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *FeedLimiter
}

// NewMarketIndexProvider creates a provider rate limited to 10 requests per minute.
func NewMarketIndexProvider(baseURL string, tracer trace.Tracer) *MarketIndexProvider {
	return &MarketIndexProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		tracer:  tracer,
		limiter: NewFeedLimiter(10, time.Minute),
	}
}

// FetchDailyCloses returns one point per trading day covering the last
// days calendar days, sorted oldest first.
func (p *MarketIndexProvider) FetchDailyCloses(ctx context.Context, symbol string, days int) ([]IndexPoint, error) {
	_, span := p.tracer.Start(ctx, "marketindex.fetch-daily-closes")
	defer span.End()

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%dd", p.baseURL, symbol, days)

	body, err := p.doRequest(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetch daily closes for %s: %w", symbol, err)
	}

	var raw struct {
		Chart struct {
			Result []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Close []*float64 `json:"close"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"result"`
			Error *struct {
				Description string `json:"description"`
			} `json:"error"`
		} `json:"chart"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse daily closes for %s: %w", symbol, err)
	}
	if raw.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, raw.Chart.Error.Description)
	}
	if len(raw.Chart.Result) == 0 || len(raw.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty chart result for %s", symbol)
	}

	result := raw.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	points := make([]IndexPoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, IndexPoint{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: *closes[i],
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

func (p *MarketIndexProvider) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "market-mood/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chart API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
