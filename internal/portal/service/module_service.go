package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ratemynus-portal/internal/entity"
	"ratemynus-portal/internal/portal/dto"
	"ratemynus-portal/internal/portal/repository"
	"ratemynus-portal/pkg/logger"
	"ratemynus-portal/pkg/metrics"
	"ratemynus-portal/pkg/score"
	"ratemynus-portal/pkg/utils"
)

// ModuleService composes module pages from review API data.
type ModuleService interface {
	GetModuleDetail(ctx context.Context, code string) (*dto.ModuleDetailView, error)
	ListModules(ctx context.Context) (*dto.ModuleListView, error)
}

// NewModuleService creates a new module service.
func NewModuleService(catalogRepo repository.CatalogRepository, logger *logger.Logger) ModuleService {
	return &moduleService{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

type moduleService struct {
	catalogRepo repository.CatalogRepository
	logger      *logger.Logger
}

// GetModuleDetail loads a module and shapes it for display. Any load
// failure yields the terminal not-found view; it is never retried. An error
// is only returned when the caller's context is already done.
func (s *moduleService) GetModuleDetail(ctx context.Context, code string) (*dto.ModuleDetailView, error) {
	module, err := s.catalogRepo.GetModule(ctx, code)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.InfoContext(ctx, "Module not found", logger.StringField("code", code))
		} else {
			s.logger.WarnContext(ctx, "Failed to load module, rendering not found", logger.StringField("code", code), logger.ErrorField(err))
		}
		metrics.ModuleViewsTotal.WithLabelValues(string(RenderModeNotFound)).Inc()
		return notFoundView(code), nil
	}

	mode := SelectRenderMode(module)
	metrics.ModuleViewsTotal.WithLabelValues(string(mode)).Inc()

	view := &dto.ModuleDetailView{
		State:         string(mode),
		RequestedCode: code,
		Module:        mapToModuleHeader(module),
	}

	switch mode {
	case RenderModeInsufficient:
		view.Insufficient = mapToInsufficientView(module)
	case RenderModeFull:
		view.Sentiment = s.mapToSentimentView(ctx, module)
	}

	return view, nil
}

// ListModules returns the browse view. Upstream failures are returned to the caller.
func (s *moduleService) ListModules(ctx context.Context) (*dto.ModuleListView, error) {
	modules, err := s.catalogRepo.ListModules(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list modules", logger.ErrorField(err))
		return nil, fmt.Errorf("list modules: %w", err)
	}

	cards := make([]dto.ModuleCardView, 0, len(modules))
	for _, m := range modules {
		card := dto.ModuleCardView{
			Code:         m.Code,
			Name:         m.Name,
			Units:        m.Units,
			CommentCount: m.CommentCount,
		}
		if SelectRenderMode(&m) == RenderModeFull && m.SentimentData.HasMetrics() {
			card.Average = averageScore(m.SentimentData)
		}
		cards = append(cards, card)
	}

	return &dto.ModuleListView{Modules: cards}, nil
}

// NotFoundMessage is the user-facing text for an unresolved module code.
func NotFoundMessage(code string) string {
	return fmt.Sprintf("The module code \"%s\" does not exist in our database.", code)
}

func notFoundView(code string) *dto.ModuleDetailView {
	return &dto.ModuleDetailView{
		State:         string(RenderModeNotFound),
		RequestedCode: code,
		Message:       NotFoundMessage(code),
	}
}

func mapToModuleHeader(m *entity.Module) *dto.ModuleHeader {
	semesters := m.Semesters
	if semesters == nil {
		semesters = []string{}
	}
	return &dto.ModuleHeader{
		Code:         m.Code,
		Name:         m.Name,
		Units:        m.Units,
		Semesters:    semesters,
		CommentCount: m.CommentCount,
		Description:  m.Description,
		URL:          m.URL,
	}
}

func mapToInsufficientView(m *entity.Module) *dto.InsufficientView {
	raw := m.SentimentData.RawComments
	comments := make([]dto.CommentView, 0, len(raw))
	for _, c := range raw {
		comments = append(comments, mapToCommentView(c))
	}

	count := m.CommentCount
	if count < len(comments) {
		count = len(comments)
	}

	return &dto.InsufficientView{
		Count:    count,
		Banner:   insufficientBanner(count),
		Comments: comments,
	}
}

func insufficientBanner(count int) string {
	noun := "reviews"
	if count == 1 {
		noun = "review"
	}
	return fmt.Sprintf("Only %d %s available. Showing all reviews below.", count, noun)
}

func (s *moduleService) mapToSentimentView(ctx context.Context, m *entity.Module) *dto.SentimentView {
	data := m.SentimentData
	view := &dto.SentimentView{
		Summary: strings.TrimSpace(data.Summary),
	}

	if data.HasMetrics() {
		view.Average = averageScore(data)
		if data.Average != nil && *data.Average != view.Average.Value {
			s.logger.DebugContext(ctx, "Upstream average disagrees with recomputed average",
				logger.StringField("code", m.Code),
				logger.Field("upstream", *data.Average),
				logger.Field("computed", view.Average.Value))
		}
		for _, sc := range score.Scores(*data.Workload, *data.Difficulty, *data.Usefulness, *data.Enjoyability) {
			view.Scores = append(view.Scores, mapToScoreView(sc))
		}
	} else {
		s.logger.WarnContext(ctx, "Sentiment data missing metrics, omitting scores", logger.StringField("code", m.Code))
	}

	for _, entry := range data.Advice.Entries() {
		view.Advice = append(view.Advice, dto.AdviceView{
			Category: string(entry.Category),
			Title:    capitalize(string(entry.Category)),
			Text:     entry.Text,
		})
	}

	for _, c := range data.TopComments {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		view.TopComments = append(view.TopComments, mapToCommentView(c))
	}

	return view
}

func averageScore(data *entity.SentimentData) *dto.ScoreView {
	avg := score.Average(*data.Workload, *data.Difficulty, *data.Usefulness, *data.Enjoyability)
	sv := mapToScoreView(score.Score{Metric: score.Overall, Value: avg, Band: score.Classify(score.Overall, avg)})
	return &sv
}

func mapToScoreView(sc score.Score) dto.ScoreView {
	return dto.ScoreView{
		Label:   sc.Label(),
		Value:   sc.Value,
		Display: strconv.FormatFloat(sc.Value, 'f', 1, 64),
		Band:    string(sc.Band),
		Color:   sc.Band.Color(),
	}
}

func mapToCommentView(c entity.Comment) dto.CommentView {
	view := dto.CommentView{
		Text:    c.Text,
		Upvotes: c.Upvotes,
		Author:  c.Author,
	}
	if c.HasDate() {
		view.Date = utils.PrettyMonth(c.Date.Time)
	}
	return view
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
