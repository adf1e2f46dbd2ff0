package dto

// ModuleDetailView is everything the module page renders.
type ModuleDetailView struct {
	State         string            `json:"state"`
	RequestedCode string            `json:"requested_code"`
	Message       string            `json:"message,omitempty"`
	Module        *ModuleHeader     `json:"module,omitempty"`
	Sentiment     *SentimentView    `json:"sentiment,omitempty"`
	Insufficient  *InsufficientView `json:"insufficient,omitempty"`
}

// ModuleHeader is the quick-facts block at the top of a module page.
type ModuleHeader struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Units        float64  `json:"units"`
	Semesters    []string `json:"semesters"`
	CommentCount int      `json:"comment_count"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// ScoreView is one banded score.
type ScoreView struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Band    string  `json:"band"`
	Color   string  `json:"color"`
}

// SentimentView is the full aggregated body.
type SentimentView struct {
	Average     *ScoreView    `json:"average,omitempty"`
	Scores      []ScoreView   `json:"scores,omitempty"`
	Summary     string        `json:"summary,omitempty"`
	Advice      []AdviceView  `json:"advice,omitempty"`
	TopComments []CommentView `json:"top_comments,omitempty"`
}

// AdviceView is one present advice category.
type AdviceView struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Text     string `json:"text"`
}

// CommentView is a comment ready for display.
type CommentView struct {
	Text    string `json:"text"`
	Upvotes int    `json:"upvotes"`
	Date    string `json:"date,omitempty"`
	Author  string `json:"author,omitempty"`
}

// InsufficientView lists every raw comment of a thinly reviewed module.
type InsufficientView struct {
	Count    int           `json:"count"`
	Banner   string        `json:"banner"`
	Comments []CommentView `json:"comments"`
}

// ModuleCardView is one entry on the browse page.
type ModuleCardView struct {
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	Units        float64    `json:"units"`
	CommentCount int        `json:"comment_count"`
	Average      *ScoreView `json:"average,omitempty"`
}

// ModuleListView is the browse page.
type ModuleListView struct {
	Modules []ModuleCardView `json:"modules"`
}
