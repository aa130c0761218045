package data912

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseUrl = "https://data912.com"

// Client fetches live Argentine bond/notes quotes and the MEP rate from
// the data912 feeds.
type Client struct {
	HttpClient *http.Client
	BaseUrl    string
}

func NewClient() *Client {
	return &Client{
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		BaseUrl:    DefaultBaseUrl,
	}
}

type instrument struct {
	Symbol   string  `json:"symbol"`
	PxBid    float64 `json:"px_bid"`
	PxAsk    float64 `json:"px_ask"`
	Close    float64 `json:"c"`
	Currency string  `json:"q"`
}

type mepEntry struct {
	Close float64 `json:"close"`
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseUrl+path, nil)
	if err != nil {
		return err
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		return fmt.Errorf("%s failed with status code %d: %s", path, response.StatusCode, string(responseBytes))
	}

	return json.Unmarshal(responseBytes, out)
}

// Prices returns one price per ticker across the bonds and notes feeds.
// Price selection: close, then ask, then bid; first positive wins. Tickers
// with no positive quote are omitted.
func (c *Client) Prices(ctx context.Context) (map[string]decimal.Decimal, error) {
	instruments := []instrument{}
	for _, path := range []string{"/live/arg_bonds", "/live/arg_notes"} {
		page := []instrument{}
		if err := c.get(ctx, path, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
		}
		instruments = append(instruments, page...)
	}

	prices := map[string]decimal.Decimal{}
	for _, inst := range instruments {
		if inst.Symbol == "" {
			continue
		}
		price := selectPrice(inst)
		if price.GreaterThan(decimal.Zero) {
			prices[inst.Symbol] = price
		}
	}

	return prices, nil
}

// MEPRate returns the median close of the live MEP feed.
func (c *Client) MEPRate(ctx context.Context) (decimal.Decimal, error) {
	entries := []mepEntry{}
	if err := c.get(ctx, "/live/mep", &entries); err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch mep: %w", err)
	}

	closes := []float64{}
	for _, entry := range entries {
		if entry.Close > 0 {
			closes = append(closes, entry.Close)
		}
	}
	if len(closes) == 0 {
		return decimal.Zero, fmt.Errorf("mep feed returned no usable closes")
	}

	sort.Float64s(closes)
	n := len(closes)
	if n%2 == 1 {
		return decimal.NewFromFloat(closes[n/2]), nil
	}
	return decimal.NewFromFloat((closes[n/2-1] + closes[n/2]) / 2), nil
}

func selectPrice(inst instrument) decimal.Decimal {
	if inst.Close > 0 {
		return decimal.NewFromFloat(inst.Close)
	}
	if inst.PxAsk > 0 {
		return decimal.NewFromFloat(inst.PxAsk)
	}
	if inst.PxBid > 0 {
		return decimal.NewFromFloat(inst.PxBid)
	}
	return decimal.Zero
}
