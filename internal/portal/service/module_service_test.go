package service

import (
	"context"
	"fmt"
	"testing"

	"ratemynus-portal/internal/entity"
	"ratemynus-portal/internal/portal/repository"
	"ratemynus-portal/pkg/logger"
	"ratemynus-portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	modules map[string]*entity.Module
	list    []entity.Module
	err     error
	calls   int
}

func (f *fakeCatalog) ListModules(_ context.Context) ([]entity.Module, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeCatalog) GetModule(_ context.Context, code string) (*entity.Module, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if m, ok := f.modules[code]; ok {
		return m, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCatalog) Search(_ context.Context, _ string) ([]entity.SearchResult, error) {
	return nil, nil
}

func fullModule() *entity.Module {
	return &entity.Module{
		Code:         "CS2030S",
		Name:         "Programming Methodology II",
		Units:        4,
		Semesters:    []string{"Sem 1", "Sem 2"},
		CommentCount: 57,
		URL:          "https://nusmods.com/courses/CS2030S",
		SentimentData: &entity.SentimentData{
			Workload:     utils.ToPointer(4.5),
			Difficulty:   utils.ToPointer(4.0),
			Usefulness:   utils.ToPointer(4.5),
			Enjoyability: utils.ToPointer(3.5),
			Average:      utils.ToPointer(3.0),
			Summary:      "Demanding but worth it.",
			Advice: entity.Advice{
				General:   "Do the labs early.",
				Practical: "Practise under time pressure.",
			},
			TopComments: []entity.Comment{
				{Text: "Best module so far", Upvotes: 20},
			},
		},
	}
}

func newTestService(catalog *fakeCatalog) ModuleService {
	return NewModuleService(catalog, logger.NewNop())
}

func TestSelectRenderMode(t *testing.T) {
	assert.Equal(t, RenderModeNotFound, SelectRenderMode(nil))
	assert.Equal(t, RenderModeNotAnalyzed, SelectRenderMode(&entity.Module{Code: "CS1010"}))
	assert.Equal(t, RenderModeInsufficient, SelectRenderMode(&entity.Module{
		CommentCount:  100,
		SentimentData: &entity.SentimentData{InsufficientData: true},
	}))
	assert.Equal(t, RenderModeFull, SelectRenderMode(&entity.Module{
		CommentCount:  1,
		SentimentData: &entity.SentimentData{},
	}), "the comment count is never used to second-guess the upstream flag")
}

func TestGetModuleDetail_NotFoundQuotesCode(t *testing.T) {
	svc := newTestService(&fakeCatalog{})

	view, err := svc.GetModuleDetail(context.Background(), "CS9999")

	require.NoError(t, err)
	assert.Equal(t, "not_found", view.State)
	assert.Equal(t, "CS9999", view.RequestedCode)
	assert.Contains(t, view.Message, `"CS9999"`)
	assert.Nil(t, view.Module)
}

func TestGetModuleDetail_NetworkFailureIsTerminalNotFound(t *testing.T) {
	catalog := &fakeCatalog{err: fmt.Errorf("%w: connection refused", repository.ErrUpstream)}
	svc := newTestService(catalog)

	view, err := svc.GetModuleDetail(context.Background(), "CS2030S")

	require.NoError(t, err)
	assert.Equal(t, "not_found", view.State)
	assert.Equal(t, 1, catalog.calls, "no retry")
}

func TestGetModuleDetail_CanceledContextReturnsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := newTestService(&fakeCatalog{err: context.Canceled})

	_, err := svc.GetModuleDetail(ctx, "CS2030S")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetModuleDetail_NotAnalyzed(t *testing.T) {
	svc := newTestService(&fakeCatalog{modules: map[string]*entity.Module{
		"CS1010": {Code: "CS1010", Name: "Programming Methodology", Units: 4, CommentCount: 0},
	}})

	view, err := svc.GetModuleDetail(context.Background(), "CS1010")

	require.NoError(t, err)
	assert.Equal(t, "not_analyzed", view.State)
	require.NotNil(t, view.Module)
	assert.Equal(t, []string{}, view.Module.Semesters)
	assert.Nil(t, view.Sentiment)
	assert.Nil(t, view.Insufficient)
}

func TestGetModuleDetail_InsufficientShowsEveryRawComment(t *testing.T) {
	svc := newTestService(&fakeCatalog{modules: map[string]*entity.Module{
		"GEA1000": {
			Code:         "GEA1000",
			Name:         "Quantitative Reasoning with Data",
			CommentCount: 2,
			SentimentData: &entity.SentimentData{
				InsufficientData: true,
				RawComments: []entity.Comment{
					{Text: "Chill module.", Upvotes: 3},
					{Text: "Group project heavy.", Upvotes: 0},
				},
			},
		},
	}})

	view, err := svc.GetModuleDetail(context.Background(), "GEA1000")

	require.NoError(t, err)
	assert.Equal(t, "insufficient", view.State)
	assert.Nil(t, view.Sentiment, "no averaged score")
	require.NotNil(t, view.Insufficient)
	require.Len(t, view.Insufficient.Comments, 2)
	assert.Equal(t, "Chill module.", view.Insufficient.Comments[0].Text)
	assert.Equal(t, 3, view.Insufficient.Comments[0].Upvotes)
	assert.Equal(t, "Group project heavy.", view.Insufficient.Comments[1].Text)
	assert.Equal(t, "Only 2 reviews available. Showing all reviews below.", view.Insufficient.Banner)
}

func TestGetModuleDetail_InsufficientSingularBanner(t *testing.T) {
	svc := newTestService(&fakeCatalog{modules: map[string]*entity.Module{
		"X1": {Code: "X1", CommentCount: 1, SentimentData: &entity.SentimentData{
			InsufficientData: true,
			RawComments:      []entity.Comment{{Text: "only one"}},
		}},
	}})

	view, err := svc.GetModuleDetail(context.Background(), "X1")

	require.NoError(t, err)
	assert.Equal(t, "Only 1 review available. Showing all reviews below.", view.Insufficient.Banner)
}

func TestGetModuleDetail_FullComposesScores(t *testing.T) {
	svc := newTestService(&fakeCatalog{modules: map[string]*entity.Module{"CS2030S": fullModule()}})

	view, err := svc.GetModuleDetail(context.Background(), "CS2030S")

	require.NoError(t, err)
	assert.Equal(t, "full", view.State)
	require.NotNil(t, view.Sentiment)

	// (4.5 + 3.5 + (6-4.5) + (6-4)) / 4 = 2.875 -> 3.0
	require.NotNil(t, view.Sentiment.Average)
	assert.Equal(t, 3.0, view.Sentiment.Average.Value)
	assert.Equal(t, "moderate", view.Sentiment.Average.Band)

	require.Len(t, view.Sentiment.Scores, 4)
	assert.Equal(t, "Workload", view.Sentiment.Scores[0].Label)
	assert.Equal(t, "poor", view.Sentiment.Scores[0].Band)
	assert.Equal(t, "peach", view.Sentiment.Scores[0].Color)
	assert.Equal(t, "4.5", view.Sentiment.Scores[0].Display)
	assert.Equal(t, "good", view.Sentiment.Scores[2].Band)

	require.Len(t, view.Sentiment.Advice, 2)
	assert.Equal(t, "General", view.Sentiment.Advice[0].Title)
	assert.Equal(t, "Practical", view.Sentiment.Advice[1].Title)

	require.Len(t, view.Sentiment.TopComments, 1)
	assert.Empty(t, view.Sentiment.TopComments[0].Date)
}

func TestGetModuleDetail_EmptyTopCommentsDegrades(t *testing.T) {
	m := fullModule()
	m.SentimentData.TopComments = []entity.Comment{{Text: "  "}}
	svc := newTestService(&fakeCatalog{modules: map[string]*entity.Module{"CS2030S": m}})

	view, err := svc.GetModuleDetail(context.Background(), "CS2030S")

	require.NoError(t, err)
	assert.Empty(t, view.Sentiment.TopComments)
	assert.Len(t, view.Sentiment.Scores, 4)
}

func TestGetModuleDetail_MissingMetricsDropScores(t *testing.T) {
	m := fullModule()
	m.SentimentData.Difficulty = nil
	svc := newTestService(&fakeCatalog{modules: map[string]*entity.Module{"CS2030S": m}})

	view, err := svc.GetModuleDetail(context.Background(), "CS2030S")

	require.NoError(t, err)
	assert.Equal(t, "full", view.State)
	assert.Nil(t, view.Sentiment.Average)
	assert.Empty(t, view.Sentiment.Scores)
	assert.Equal(t, "Demanding but worth it.", view.Sentiment.Summary)
}

func TestListModules_AddsAverageForAnalyzedModules(t *testing.T) {
	analyzed := fullModule()
	svc := newTestService(&fakeCatalog{list: []entity.Module{
		*analyzed,
		{Code: "CS1010", Name: "Programming Methodology"},
		{Code: "GEA1000", SentimentData: &entity.SentimentData{InsufficientData: true}},
	}})

	view, err := svc.ListModules(context.Background())

	require.NoError(t, err)
	require.Len(t, view.Modules, 3)
	require.NotNil(t, view.Modules[0].Average)
	assert.Equal(t, 3.0, view.Modules[0].Average.Value)
	assert.Nil(t, view.Modules[1].Average)
	assert.Nil(t, view.Modules[2].Average)
}

func TestListModules_PropagatesUpstreamFailure(t *testing.T) {
	svc := newTestService(&fakeCatalog{err: repository.ErrUpstream})

	_, err := svc.ListModules(context.Background())

	assert.ErrorIs(t, err, repository.ErrUpstream)
}
