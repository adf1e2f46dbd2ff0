// Package typeahead implements the debounced search-as-you-type controller
// behind the module search box.
//
// A Controller owns all of its state on a single event-loop goroutine (Run).
// User events, debounce timer expiries and search responses are all
// delivered to that loop, so no two handlers ever run at once. Every remote
// lookup is tagged with the request sequence current when it was issued and
// its response is applied only if that sequence is still current; a newer
// keystroke also cancels the older request's context.
package typeahead

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"ratemynus-portal/internal/entity"
	"ratemynus-portal/pkg/logger"
	"ratemynus-portal/pkg/metrics"
	"ratemynus-portal/pkg/utils"

	"github.com/jonboulle/clockwork"
)

const (
	DefaultDebounce       = 200 * time.Millisecond
	DefaultMinQueryLength = 2
)

var (
	// ErrStopped is returned by event methods once Run has returned.
	ErrStopped = errors.New("typeahead controller stopped")
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("typeahead controller already running")
)

// Phase is the controller's coarse state.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhasePending      Phase = "pending"
	PhaseResultsShown Phase = "results-shown"
	PhaseNoResults    Phase = "no-results"
)

// Key is a keyboard key the controller reacts to.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// State is a snapshot of what the search box shows.
type State struct {
	Phase    Phase                 `json:"phase"`
	Query    string                `json:"query"`
	Results  []entity.SearchResult `json:"results"`
	Open     bool                  `json:"open"`
	Selected int                   `json:"selected"`
}

func (s State) clone() State {
	if s.Results != nil {
		s.Results = append([]entity.SearchResult(nil), s.Results...)
	}
	return s
}

// Searcher performs the remote lookup. Results are used in the order given.
type Searcher interface {
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}

// Navigator moves the user to a module page.
type Navigator interface {
	Navigate(code string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(code string)

func (f NavigatorFunc) Navigate(code string) { f(code) }

// Listener receives every published state. It runs on the event loop and
// must not call back into the controller.
type Listener func(State)

// Option configures a Controller.
type Option func(*Controller)

func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = d
		}
	}
}

func WithMinQueryLength(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.minQueryLength = n
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Controller) { c.logger = log }
}

func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

type envelope struct {
	event   interface{}
	applied chan struct{}
}

type (
	inputEvent   struct{ text string }
	keyEvent     struct{ key Key }
	pointerEvent struct{ inside bool }
	selectEvent  struct{ code string }

	debounceFired struct {
		seq   uint64
		query string
	}

	searchDone struct {
		seq     uint64
		query   string
		results []entity.SearchResult
		err     error
	}
)

// Controller is one search box's typeahead logic.
type Controller struct {
	searcher       Searcher
	navigator      Navigator
	clock          clockwork.Clock
	logger         *logger.Logger
	listener       Listener
	debounce       time.Duration
	minQueryLength int

	events  chan envelope
	done    chan struct{}
	running atomic.Bool

	// Owned by the event loop.
	loopCtx        context.Context
	state          State
	seq            uint64
	timer          clockwork.Timer
	cancelInflight context.CancelFunc

	mu       sync.RWMutex
	snapshot State
}

// NewController creates a controller. Call Run before sending events.
func NewController(searcher Searcher, navigator Navigator, opts ...Option) *Controller {
	c := &Controller{
		searcher:       searcher,
		navigator:      navigator,
		clock:          clockwork.NewRealClock(),
		logger:         logger.NewNop(),
		debounce:       DefaultDebounce,
		minQueryLength: DefaultMinQueryLength,
		events:         make(chan envelope),
		done:           make(chan struct{}),
		state:          State{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.snapshot = c.state
	return c
}

// Run processes events until ctx is done. Pending timers and in-flight
// lookups are abandoned on return and their results are never applied.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	c.loopCtx = ctx
	defer close(c.done)
	defer c.abandon()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case env := <-c.events:
			c.handle(env.event)
			if env.applied != nil {
				close(env.applied)
			}
		}
	}
}

// Input records new query text, as typed.
func (c *Controller) Input(ctx context.Context, text string) error {
	return c.dispatch(ctx, inputEvent{text: text})
}

// KeyDown handles a key press in the search box.
func (c *Controller) KeyDown(ctx context.Context, key Key) error {
	return c.dispatch(ctx, keyEvent{key: key})
}

// PointerDown handles a pointer press; inside reports whether it landed
// within the search control.
func (c *Controller) PointerDown(ctx context.Context, inside bool) error {
	return c.dispatch(ctx, pointerEvent{inside: inside})
}

// Select handles a pointer selection of the result with the given code.
func (c *Controller) Select(ctx context.Context, code string) error {
	return c.dispatch(ctx, selectEvent{code: code})
}

// Snapshot returns the most recently published state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.clone()
}

// dispatch hands ev to the loop and waits until it has been applied.
func (c *Controller) dispatch(ctx context.Context, ev interface{}) error {
	applied := make(chan struct{})
	select {
	case c.events <- envelope{event: ev, applied: applied}:
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-applied:
		return nil
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// post delivers an internal event without waiting for it to be applied.
func (c *Controller) post(ev interface{}) {
	select {
	case c.events <- envelope{event: ev}:
	case <-c.done:
	}
}

func (c *Controller) handle(ev interface{}) {
	switch ev := ev.(type) {
	case inputEvent:
		c.onInput(ev.text)
	case keyEvent:
		c.onKey(ev.key)
	case pointerEvent:
		if !ev.inside {
			c.dismiss()
		}
	case selectEvent:
		c.choose(ev.code)
	case debounceFired:
		c.onDebounceFired(ev)
	case searchDone:
		c.onSearchDone(ev)
	}
}

func (c *Controller) onInput(text string) {
	c.supersede()
	c.state.Query = text

	query := strings.TrimSpace(text)
	if utf8.RuneCountInString(query) < c.minQueryLength {
		c.state.Results = nil
		c.state.Open = false
		c.state.Selected = 0
		c.state.Phase = PhaseIdle
		c.publish()
		return
	}

	seq := c.seq
	c.timer = c.clock.AfterFunc(c.debounce, func() {
		c.post(debounceFired{seq: seq, query: query})
	})
	c.state.Phase = PhasePending
	c.publish()
}

func (c *Controller) onDebounceFired(ev debounceFired) {
	if ev.seq != c.seq {
		return
	}
	c.timer = nil

	ctx, cancel := context.WithCancel(c.loopCtx)
	c.cancelInflight = cancel
	metrics.SearchDispatchedTotal.Inc()
	c.logger.Debug("Dispatching typeahead search",
		logger.StringField("query", ev.query),
		logger.Field("seq", ev.seq))

	seq, query := ev.seq, ev.query
	utils.GoSafe(c.logger, func() {
		results, err := c.searcher.Search(ctx, query)
		c.post(searchDone{seq: seq, query: query, results: results, err: err})
	})
}

func (c *Controller) onSearchDone(ev searchDone) {
	if ev.seq != c.seq {
		metrics.SearchSupersededTotal.Inc()
		c.logger.Debug("Discarding superseded typeahead response",
			logger.StringField("query", ev.query),
			logger.Field("seq", ev.seq),
			logger.Field("current_seq", c.seq))
		return
	}
	if c.cancelInflight != nil {
		c.cancelInflight()
		c.cancelInflight = nil
	}

	c.state.Selected = 0
	if ev.err != nil {
		metrics.SearchFailedTotal.Inc()
		c.logger.Warn("Typeahead search failed", logger.StringField("query", ev.query), logger.ErrorField(ev.err))
		c.state.Results = nil
		c.state.Open = false
		c.state.Phase = PhaseNoResults
		c.publish()
		return
	}

	c.state.Results = ev.results
	c.state.Open = len(ev.results) > 0
	if c.state.Open {
		c.state.Phase = PhaseResultsShown
	} else {
		c.state.Phase = PhaseNoResults
	}
	c.publish()
}

func (c *Controller) onKey(key Key) {
	n := len(c.state.Results)
	if key == KeyEscape {
		c.dismiss()
		return
	}
	if !c.state.Open || n == 0 {
		return
	}

	switch key {
	case KeyArrowDown:
		c.state.Selected = (c.state.Selected + 1) % n
		c.publish()
	case KeyArrowUp:
		c.state.Selected = (c.state.Selected - 1 + n) % n
		c.publish()
	case KeyEnter:
		c.choose(c.state.Results[c.state.Selected].Code)
	}
}

// dismiss closes the dropdown and keeps the query text.
func (c *Controller) dismiss() {
	if !c.state.Open && c.state.Phase == PhaseIdle {
		return
	}
	c.supersede()
	c.state.Open = false
	c.state.Phase = PhaseIdle
	c.publish()
}

// choose navigates to code and resets the control.
func (c *Controller) choose(code string) {
	c.supersede()
	c.state = State{Phase: PhaseIdle}
	c.publish()
	if c.navigator != nil {
		c.navigator.Navigate(code)
	}
}

// supersede invalidates the pending timer and any in-flight lookup.
func (c *Controller) supersede() {
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancelInflight != nil {
		c.cancelInflight()
		c.cancelInflight = nil
	}
}

func (c *Controller) abandon() {
	c.supersede()
}

func (c *Controller) publish() {
	snap := c.state.clone()
	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	if c.listener != nil {
		c.listener(snap.clone())
	}
}
