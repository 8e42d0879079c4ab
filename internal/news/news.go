package news

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"asesor-telegram-bot/internal/types"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// maxHeadlines caps how many items Recent returns.
const maxHeadlines = 2

// Client fetches recent company headlines from the news provider.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(token string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		now: time.Now,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(baseURL, token string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// Recent returns up to two headlines covering the trailing three days.
// A non-list payload from the provider (error bodies, rate-limit notices)
// yields an empty slice, never an error.
func (c *Client) Recent(ticker string) ([]types.NewsItem, error) {
	today := c.now().Format("2006-01-02")
	past := c.now().AddDate(0, 0, -3).Format("2006-01-02")

	endpoint := fmt.Sprintf("%s/company-news?symbol=%s&from=%s&to=%s&token=%s",
		c.baseURL, url.QueryEscape(ticker), past, today, url.QueryEscape(c.token))

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch news for %s", ticker)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read news payload for %s", ticker)
	}

	var items []types.NewsItem
	if err := json.Unmarshal(body, &items); err != nil {
		log.Debugf("non-list news payload for %s, treating as empty", ticker)
		return nil, nil
	}

	if len(items) > maxHeadlines {
		items = items[:maxHeadlines]
	}
	return items, nil
}
