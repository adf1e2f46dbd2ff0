package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_DecodesFullPayload(t *testing.T) {
	payload := `{
		"code": "CS2030S",
		"name": "Programming Methodology II",
		"units": 4,
		"semesters": ["Sem 1", "Sem 2"],
		"comment_count": 42,
		"url": "https://nusmods.com/courses/CS2030S",
		"sentiment_data": {
			"workload": 4.5, "difficulty": 4, "usefulness": 4.5, "enjoyability": 3.5,
			"average": 3.5,
			"summary": "Hard but rewarding.",
			"advice": {"general": "Start labs early.", "midterm": "Practise past papers."},
			"top_comments": [{"text": "Great module", "upvotes": 12, "date": "2023-08-01T00:00:00"}]
		}
	}`

	var m Module
	require.NoError(t, json.Unmarshal([]byte(payload), &m))

	assert.Equal(t, "CS2030S", m.Code)
	assert.Equal(t, 42, m.CommentCount)
	require.NotNil(t, m.SentimentData)
	assert.True(t, m.SentimentData.HasMetrics())
	assert.Equal(t, 4.5, *m.SentimentData.Workload)
	require.Len(t, m.SentimentData.TopComments, 1)
	assert.True(t, m.SentimentData.TopComments[0].HasDate())
	assert.Equal(t, time.August, m.SentimentData.TopComments[0].Date.Month())
}

func TestModule_InsufficientPayload(t *testing.T) {
	payload := `{"code": "GEA1000", "name": "Quantitative Reasoning", "units": 4, "semesters": [], "comment_count": 2,
		"sentiment_data": {"insufficient_data": true, "raw_comments": [
			{"text": "ok", "upvotes": 1, "date": null},
			{"text": "fine", "upvotes": 0, "date": "not-a-date"}
		]}}`

	var m Module
	require.NoError(t, json.Unmarshal([]byte(payload), &m))

	require.NotNil(t, m.SentimentData)
	assert.True(t, m.SentimentData.InsufficientData)
	assert.False(t, m.SentimentData.HasMetrics())
	require.Len(t, m.SentimentData.RawComments, 2)
	assert.False(t, m.SentimentData.RawComments[0].HasDate())
	assert.False(t, m.SentimentData.RawComments[1].HasDate())
}

func TestAdvice_EntriesKeepFixedOrder(t *testing.T) {
	a := Advice{Tutorial: "Attend.", General: "Keep up.", Final: "Revise."}

	entries := a.Entries()

	require.Len(t, entries, 3)
	assert.Equal(t, AdviceGeneral, entries[0].Category)
	assert.Equal(t, AdviceFinal, entries[1].Category)
	assert.Equal(t, AdviceTutorial, entries[2].Category)
}

func TestTimestamp_Layouts(t *testing.T) {
	for _, raw := range []string{`"2024-03-01"`, `"2024-03-01T10:00:00Z"`, `"2024-03-01 10:00:00"`, `"2024-03-01T10:00:00.123456"`} {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts))
		assert.Equal(t, 2024, ts.Year(), raw)
		assert.Equal(t, time.March, ts.Month(), raw)
	}
}
