package market

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"asesor-telegram-bot/internal/types"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// ErrNoData signals that the provider returned no usable closes for a
// ticker (unknown symbol, not traded, provider error payload).
var ErrNoData = errors.New("no historical data for ticker")

// Client fetches daily closing prices from the chart API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a market data client with a bounded request timeout so
// a stalled provider cannot hang the reply path or a scheduler tick.
func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// chartResponse mirrors the provider's chart payload. Only the fields the
// bot reads are declared.
type chartResponse struct {
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
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History returns the trailing five years of daily closes for a ticker,
// oldest first. Returns ErrNoData when the provider knows nothing usable.
func (c *Client) History(ticker string) ([]types.Close, error) {
	return c.fetchCloses(ticker, "5y")
}

// LatestClose returns the most recent daily close for a ticker.
func (c *Client) LatestClose(ticker string) (float64, error) {
	closes, err := c.fetchCloses(ticker, "1d")
	if err != nil {
		return 0, err
	}
	return closes[len(closes)-1].Price, nil
}

func (c *Client) fetchCloses(ticker, period string) ([]types.Close, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.baseURL, url.PathEscape(ticker), period)

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch chart for %s", ticker)
	}
	defer resp.Body.Close()

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrapf(err, "could not parse chart payload for %s", ticker)
	}

	if payload.Chart.Error != nil {
		log.Debugf("chart API error for %s: %s", ticker, payload.Chart.Error.Code)
		return nil, ErrNoData
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	result := payload.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	var closes []types.Close
	for i, price := range quote.Close {
		// Untraded days come back as nulls.
		if price == nil || i >= len(result.Timestamp) {
			continue
		}
		closes = append(closes, types.Close{
			Date:  time.Unix(result.Timestamp[i], 0).UTC(),
			Price: *price,
		})
	}

	if len(closes) == 0 {
		return nil, ErrNoData
	}
	return closes, nil
}
