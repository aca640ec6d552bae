package dataforseo

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Response is the envelope every DataForSEO endpoint returns.
type Response[T any] struct {
	Version       string    `json:"version"`
	StatusCode    int       `json:"status_code"`
	StatusMessage string    `json:"status_message"`
	Cost          float64   `json:"cost"`
	TasksCount    int       `json:"tasks_count"`
	TasksError    int       `json:"tasks_error"`
	Tasks         []Task[T] `json:"tasks"`
}

// Task is one task of a response. Result is null when the task failed.
type Task[T any] struct {
	ID            string  `json:"id"`
	StatusCode    int     `json:"status_code"`
	StatusMessage string  `json:"status_message"`
	Cost          float64 `json:"cost"`
	ResultCount   int     `json:"result_count"`
	Result        []T     `json:"result"`
}

// Results returns the results of all tasks in order.
func (r *Response[T]) Results() []T {
	if r == nil {
		return nil
	}
	var out []T
	for _, t := range r.Tasks {
		out = append(out, t.Result...)
	}
	return out
}

// check reports the first non-success status in the envelope or its tasks.
func (r *Response[T]) check() error {
	if r.StatusCode != StatusOK {
		return &APIError{StatusCode: r.StatusCode, Message: r.StatusMessage}
	}
	for _, t := range r.Tasks {
		if t.StatusCode != StatusOK {
			return &APIError{StatusCode: t.StatusCode, Message: t.StatusMessage, TaskID: t.ID}
		}
	}
	return nil
}

// APIError is a non-success status reported inside a 2xx response.
type APIError struct {
	StatusCode int
	Message    string
	TaskID     string
}

func (e *APIError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("dataforseo: task %s status %d: %s", e.TaskID, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("dataforseo: status %d: %s", e.StatusCode, e.Message)
}

// IsAPIError reports whether err carries an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return eris.As(err, &apiErr)
}

// KeywordInfo holds the search metrics of a keyword. Numeric fields are
// pointers because the API returns null when it has no data.
type KeywordInfo struct {
	SearchVolume     *int64   `json:"search_volume"`
	Competition      *float64 `json:"competition"`
	CompetitionLevel string   `json:"competition_level"`
	CPC              *float64 `json:"cpc"`
}

// KeywordData pairs a keyword with its metrics.
type KeywordData struct {
	Keyword     string      `json:"keyword"`
	KeywordInfo KeywordInfo `json:"keyword_info"`
}

// SERPItem is the search result through which a domain ranks.
type SERPItem struct {
	Type         string `json:"type"`
	RankGroup    *int   `json:"rank_group"`
	RankAbsolute *int   `json:"rank_absolute"`
	Domain       string `json:"domain"`
	URL          string `json:"url"`
	Title        string `json:"title"`
}

// RankedSERPElement wraps the ranking SERP item.
type RankedSERPElement struct {
	SERPItem SERPItem `json:"serp_item"`
}

// RankedItem is one keyword a domain ranks for.
type RankedItem struct {
	KeywordData       KeywordData       `json:"keyword_data"`
	RankedSERPElement RankedSERPElement `json:"ranked_serp_element"`
}

// RankedKeywordsResult is a result of the ranked_keywords endpoint.
type RankedKeywordsResult struct {
	Target     string       `json:"target"`
	TotalCount int          `json:"total_count"`
	ItemsCount int          `json:"items_count"`
	Items      []RankedItem `json:"items"`
}

// KeywordIdea is one suggestion of the keyword_ideas endpoint.
type KeywordIdea struct {
	Keyword     string      `json:"keyword"`
	KeywordInfo KeywordInfo `json:"keyword_info"`
}

// KeywordIdeasResult is a result of the keyword_ideas endpoint.
type KeywordIdeasResult struct {
	Seed       []string      `json:"seed"`
	TotalCount int           `json:"total_count"`
	ItemsCount int           `json:"items_count"`
	Items      []KeywordIdea `json:"items"`
}

// CompetitorDomain is a domain competing for the same keywords as the target.
type CompetitorDomain struct {
	Domain        string  `json:"domain"`
	AvgPosition   float64 `json:"avg_position"`
	SumPosition   int64   `json:"sum_position"`
	Intersections int     `json:"intersections"`
}

// CompetitorsDomainResult is a result of the competitors_domain endpoint.
type CompetitorsDomainResult struct {
	Target     string             `json:"target"`
	TotalCount int                `json:"total_count"`
	ItemsCount int                `json:"items_count"`
	Items      []CompetitorDomain `json:"items"`
}
