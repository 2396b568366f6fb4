// Package projectlist drives a paginated, incrementally searched project
// list. It is independent of any UI: the presentation layer dispatches
// actions and renders the State snapshots it is sent.
package projectlist

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/models"
)

type timer interface {
	Stop() bool
}

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// request describes one fetch. gen ties it to the search session that
// issued it; results from an older session are dropped.
type request struct {
	gen       uint64
	page      int
	query     string
	newSearch bool
}

type Option func(*Controller)

func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		c.debounce = d
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithContext sets the parent of every fetch context.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.parent = ctx
		}
	}
}

// Controller owns one list session: it debounces search input, loads
// pages from the Store and publishes State snapshots.
type Controller struct {
	store     Store
	logger    *slog.Logger
	pageSize  int
	afterFunc func(time.Duration, func()) timer
	parent    context.Context

	mu        sync.Mutex
	state     State
	debounce  time.Duration
	pending   timer
	token     uint64
	gen       uint64
	baseCtx   context.Context
	stopAll   context.CancelFunc
	ctx       context.Context
	cancel    context.CancelFunc
	failed    *request
	// committed is the page Items were last extended to; State.Page
	// reads 0 while a new search is loading.
	committed int
	subs      map[int]chan State
	nextSub   int
	closed    bool
	inflight  sync.WaitGroup
}

func New(store Store, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		logger:    slog.Default(),
		pageSize:  config.PageSize,
		afterFunc: realAfterFunc,
		parent:    context.Background(),
		debounce:  config.SearchDebounce,
		state:     State{HasMore: true},
		subs:      make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseCtx, c.stopAll = context.WithCancel(c.parent)
	return c
}

// PageSize is the fixed number of items requested per fetch.
func (c *Controller) PageSize() int {
	return c.pageSize
}

// Start performs the first load with the current (initially empty) query.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopPendingLocked()
	c.startSearchLocked(c.state.Query)
}

func (c *Controller) Dispatch(action Action) {
	switch a := action.(type) {
	case SearchQueryChanged:
		c.OnQueryChanged(a.Text)
	case LoadMoreRequested:
		c.OnLoadMore()
	}
}

// OnQueryChanged records text and schedules a search after the debounce
// delay. A newer call cancels the pending one.
func (c *Controller) OnQueryChanged(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.state.Query = text
	c.stopPendingLocked()
	tok := c.token
	c.pending = c.afterFunc(c.debounce, func() { c.fireDebounce(tok) })
	c.publishLocked()
}

func (c *Controller) fireDebounce(tok uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || tok != c.token {
		return
	}
	c.pending = nil
	c.startSearchLocked(c.state.Query)
}

// OnLoadMore fetches the next page of the current session. It does
// nothing while a fetch is in flight or once the end was reached.
func (c *Controller) OnLoadMore() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state.LoadingMore || c.state.InitialLoading || !c.state.HasMore {
		return
	}
	c.loadMoreLocked()
}

// Reload immediately restarts the session with the current query,
// dropping any pending debounced search.
func (c *Controller) Reload() {
	c.Start()
}

// Retry re-issues the last failed fetch, if any.
func (c *Controller) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.failed == nil || c.state.Loading() {
		return
	}
	req := *c.failed
	if req.newSearch {
		c.startSearchLocked(req.query)
		return
	}
	c.loadMoreLocked()
}

// SetDebounce changes the delay used by later query changes.
func (c *Controller) SetDebounce(d time.Duration) {
	c.mu.Lock()
	c.debounce = d
	c.mu.Unlock()
}

func (c *Controller) Debounce() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.debounce
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe returns a channel carrying the latest State. The channel
// holds one snapshot; a newer one replaces an unread older one. The
// current state is delivered immediately. Call the returned func to
// unsubscribe.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan State, 1)
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.state.clone()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops the pending search, cancels in-flight fetches, waits for
// them to return and closes all subscriber channels.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopPendingLocked()
	if c.cancel != nil {
		c.cancel()
	}
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.mu.Unlock()

	c.stopAll()
	c.inflight.Wait()
}

func (c *Controller) stopPendingLocked() {
	c.token++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) startSearchLocked(query string) {
	c.gen++
	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = context.WithCancel(c.baseCtx)

	req := request{
		gen:       c.gen,
		page:      1,
		query:     query,
		newSearch: true,
	}
	c.state.Page = 0
	c.state.InitialLoading = true
	c.state.LoadingMore = false
	c.fetchLocked(c.ctx, req)
}

func (c *Controller) loadMoreLocked() {
	if c.ctx == nil {
		c.startSearchLocked(c.state.Query)
		return
	}
	c.state.LoadingMore = true
	req := request{
		gen:   c.gen,
		page:  c.state.Page + 1,
		query: c.state.ActiveQuery,
	}
	c.fetchLocked(c.ctx, req)
}

func (c *Controller) fetchLocked(ctx context.Context, req request) {
	c.publishLocked()
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		items, err := c.fetch(ctx, req)
		c.apply(req, items, err)
	}()
}

func (c *Controller) fetch(ctx context.Context, req request) ([]models.Project, error) {
	query := strings.TrimSpace(req.query)
	if query == "" {
		return c.store.GetProjects(ctx, req.page, c.pageSize)
	}
	return c.store.SearchProjects(ctx, query, req.page, c.pageSize)
}

func (c *Controller) apply(req request, items []models.Project, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || req.gen != c.gen {
		c.logger.Debug("discarding stale page", "page", req.page, "query", req.query)
		return
	}

	if err != nil {
		if req.newSearch {
			c.state.InitialLoading = false
			c.state.Page = c.committed
		} else {
			c.state.LoadingMore = false
		}
		c.state.LoadErr = err
		c.failed = &req
		if !errors.Is(err, context.Canceled) {
			c.logger.Error("project list fetch failed", "page", req.page, "query", req.query, "err", err)
		}
		c.publishLocked()
		return
	}

	if req.newSearch {
		c.state.Items = append([]models.Project(nil), items...)
		c.state.ActiveQuery = req.query
		c.state.InitialLoading = false
	} else {
		c.state.Items = append(c.state.Items, items...)
		c.state.LoadingMore = false
	}
	c.state.Page = req.page
	c.committed = req.page
	c.state.HasMore = len(items) == c.pageSize
	c.state.LoadErr = nil
	c.failed = nil
	c.publishLocked()
}

func (c *Controller) publishLocked() {
	snap := c.state.clone()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
