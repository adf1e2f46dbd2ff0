package entity

// Module is a university course as served by the review API.
type Module struct {
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	Units         float64        `json:"units"`
	Semesters     []string       `json:"semesters"`
	CommentCount  int            `json:"comment_count"`
	Description   string         `json:"description,omitempty"`
	URL           string         `json:"url,omitempty"`
	SentimentData *SentimentData `json:"sentiment_data,omitempty"`
}

// SearchResult is the reduced Module projection returned by the search endpoint.
type SearchResult struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	CommentCount int      `json:"comment_count"`
	Units        float64  `json:"units"`
	Semesters    []string `json:"semesters"`
}
