package dataforseo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL  = "https://api.dataforseo.com/v3"
	defaultLocation = 2208 // Denmark
	defaultLanguage = "da"
	defaultLimit    = 1000

	// StatusOK is the status code DataForSEO reports for a successful request or task.
	StatusOK = 20000
)

const (
	endpointRankedKeywords    = "dataforseo_labs/google/ranked_keywords/live"
	endpointKeywordIdeas      = "dataforseo_labs/google/keyword_ideas/live"
	endpointCompetitorsDomain = "dataforseo_labs/google/competitors_domain/live"
)

// Client queries the DataForSEO Labs API.
type Client interface {
	RankedKeywords(ctx context.Context, domain string, limit int) (*Response[RankedKeywordsResult], error)
	KeywordIdeas(ctx context.Context, seeds []string, limit int) (*Response[KeywordIdeasResult], error)
	CompetitorsDomain(ctx context.Context, domain string, limit int) (*Response[CompetitorsDomainResult], error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithLocation overrides the location code sent with every task.
func WithLocation(code int) Option {
	return func(c *httpClient) {
		c.location = code
	}
}

// WithLanguage overrides the language code sent with every task.
func WithLanguage(code string) Option {
	return func(c *httpClient) {
		c.language = code
	}
}

type httpClient struct {
	login    string
	password string
	baseURL  string
	location int
	language string
	http     *http.Client
}

// NewClient creates a DataForSEO client authenticating with HTTP Basic auth.
func NewClient(login, password string, opts ...Option) Client {
	c := &httpClient{
		login:    login,
		password: password,
		baseURL:  defaultBaseURL,
		location: defaultLocation,
		language: defaultLanguage,
		http: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// taskRequest is one element of the POST body array.
type taskRequest struct {
	Target       string   `json:"target,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	LocationCode int      `json:"location_code"`
	LanguageCode string   `json:"language_code"`
	Limit        int      `json:"limit"`
}

func (c *httpClient) RankedKeywords(ctx context.Context, domain string, limit int) (*Response[RankedKeywordsResult], error) {
	if domain == "" {
		return nil, eris.New("dataforseo: domain is required")
	}
	task := taskRequest{
		Target:       domain,
		LocationCode: c.location,
		LanguageCode: c.language,
		Limit:        orDefault(limit),
	}
	return post[RankedKeywordsResult](ctx, c, endpointRankedKeywords, task)
}

func (c *httpClient) KeywordIdeas(ctx context.Context, seeds []string, limit int) (*Response[KeywordIdeasResult], error) {
	if len(seeds) == 0 {
		return nil, eris.New("dataforseo: at least one seed keyword is required")
	}
	task := taskRequest{
		Keywords:     seeds,
		LocationCode: c.location,
		LanguageCode: c.language,
		Limit:        orDefault(limit),
	}
	return post[KeywordIdeasResult](ctx, c, endpointKeywordIdeas, task)
}

func (c *httpClient) CompetitorsDomain(ctx context.Context, domain string, limit int) (*Response[CompetitorsDomainResult], error) {
	if domain == "" {
		return nil, eris.New("dataforseo: domain is required")
	}
	task := taskRequest{
		Target:       domain,
		LocationCode: c.location,
		LanguageCode: c.language,
		Limit:        orDefault(limit),
	}
	return post[CompetitorsDomainResult](ctx, c, endpointCompetitorsDomain, task)
}

func post[T any](ctx context.Context, c *httpClient, endpoint string, task taskRequest) (*Response[T], error) {
	body, err := json.Marshal([]taskRequest{task})
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.login, c.password)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "dataforseo: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, eris.Errorf("dataforseo: unexpected status %d: %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var result Response[T]
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "dataforseo: unmarshal response")
	}

	if err := result.check(); err != nil {
		return nil, err
	}

	return &result, nil
}

func orDefault(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
