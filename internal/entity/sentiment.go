package entity

// SentimentData is the AI-derived summary of a module's reviews.
//
// A module either has no sentiment data (not analyzed yet), has
// InsufficientData set with RawComments populated, or carries the full
// aggregate. Metrics are pointers so that a payload missing a field can be
// told apart from a real score.
type SentimentData struct {
	Workload     *float64 `json:"workload,omitempty"`
	Difficulty   *float64 `json:"difficulty,omitempty"`
	Usefulness   *float64 `json:"usefulness,omitempty"`
	Enjoyability *float64 `json:"enjoyability,omitempty"`
	Average      *float64 `json:"average,omitempty"`

	Summary     string    `json:"summary,omitempty"`
	Advice      Advice    `json:"advice"`
	TopComments []Comment `json:"top_comments,omitempty"`

	InsufficientData bool      `json:"insufficient_data,omitempty"`
	RawComments      []Comment `json:"raw_comments,omitempty"`
}

// HasMetrics reports whether all four raw metrics are present.
func (s *SentimentData) HasMetrics() bool {
	return s != nil && s.Workload != nil && s.Difficulty != nil && s.Usefulness != nil && s.Enjoyability != nil
}

// AdviceCategory names one advice slot.
type AdviceCategory string

const (
	AdviceGeneral     AdviceCategory = "general"
	AdviceMidterm     AdviceCategory = "midterm"
	AdviceFinal       AdviceCategory = "final"
	AdvicePractical   AdviceCategory = "practical"
	AdviceAssignments AdviceCategory = "assignments"
	AdviceTutorial    AdviceCategory = "tutorial"
	AdviceRecitation  AdviceCategory = "recitation"
)

// Advice holds per-category advice. Categories absent from the review
// corpus are left empty.
type Advice struct {
	General     string `json:"general,omitempty"`
	Midterm     string `json:"midterm,omitempty"`
	Final       string `json:"final,omitempty"`
	Practical   string `json:"practical,omitempty"`
	Assignments string `json:"assignments,omitempty"`
	Tutorial    string `json:"tutorial,omitempty"`
	Recitation  string `json:"recitation,omitempty"`
}

// AdviceEntry is one present advice category.
type AdviceEntry struct {
	Category AdviceCategory
	Text     string
}

// Entries returns the non-empty categories in fixed display order.
func (a Advice) Entries() []AdviceEntry {
	all := []AdviceEntry{
		{AdviceGeneral, a.General},
		{AdviceMidterm, a.Midterm},
		{AdviceFinal, a.Final},
		{AdvicePractical, a.Practical},
		{AdviceAssignments, a.Assignments},
		{AdviceTutorial, a.Tutorial},
		{AdviceRecitation, a.Recitation},
	}

	entries := make([]AdviceEntry, 0, len(all))
	for _, e := range all {
		if e.Text != "" {
			entries = append(entries, e)
		}
	}
	return entries
}
