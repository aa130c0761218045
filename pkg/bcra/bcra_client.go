package bcra

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseUrl = "https://api.bcra.gob.ar/estadisticas/v3.0/monetarias"

// Series id in the BCRA monetary statistics API.
const CERVariableId = 30

// Client reads monetary time series from the BCRA public statistics API.
// The API needs no authentication.
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

type SeriesPoint struct {
	Date  string  `json:"fecha"`
	Value float64 `json:"valor"`
}

type seriesResponse struct {
	Results []SeriesPoint `json:"results"`
}

// Series returns the data points for a variable, most recent first.
func (c *Client) Series(ctx context.Context, variableId int) ([]SeriesPoint, error) {
	url := fmt.Sprintf("%s/%d", c.BaseUrl, variableId)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		return nil, fmt.Errorf("bcra series %d failed with status code %d: %s", variableId, response.StatusCode, string(responseBytes))
	}

	parsed := seriesResponse{}
	if err := json.Unmarshal(responseBytes, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse bcra series %d: %w", variableId, err)
	}

	return parsed.Results, nil
}

// LatestCER returns the most recently published CER index value.
func (c *Client) LatestCER(ctx context.Context) (decimal.Decimal, error) {
	points, err := c.Series(ctx, CERVariableId)
	if err != nil {
		return decimal.Zero, err
	}
	if len(points) == 0 {
		return decimal.Zero, fmt.Errorf("bcra returned no CER data points")
	}

	latest := points[0]
	if latest.Value <= 0 {
		return decimal.Zero, fmt.Errorf("bcra returned non-positive CER value %f for %s", latest.Value, latest.Date)
	}
	return decimal.NewFromFloat(latest.Value), nil
}
