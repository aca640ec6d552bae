package model

// Keyword is a search term a domain ranks for, with its search metrics.
type Keyword struct {
	Keyword          string  `json:"keyword"`
	SearchVolume     int64   `json:"search_volume"`
	Competition      float64 `json:"competition"`       // 0..1
	CompetitionLevel string  `json:"competition_level"` // LOW, MEDIUM, HIGH
	CPC              float64 `json:"cpc"`
	Rank             int     `json:"rank"` // absolute SERP position, 0 when unknown
	URL              string  `json:"url"`
	Title            string  `json:"title,omitempty"`
}

// DomainKeywords holds the keywords fetched for one domain.
type DomainKeywords struct {
	Domain   string    `json:"domain"`
	Keywords []Keyword `json:"keywords"`
	// Total is the number of records before relevance filtering.
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}

// Texts returns the keyword strings in order.
func Texts(keywords []Keyword) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, k.Keyword)
	}
	return out
}
