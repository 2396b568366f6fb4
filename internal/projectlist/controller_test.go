package projectlist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/models"
	"github.com/christophertwo/aella/internal/testutil"
	"github.com/christophertwo/aella/internal/util"
)

type fakeTimer struct {
	clock   *fakeClock
	f       func()
	delay   time.Duration
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := !t.stopped
	t.stopped = true
	return was
}

// fakeClock records debounce timers so tests decide when they fire.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, f: f, delay: d}
	c.timers = append(c.timers, t)
	return t
}

// FireAll runs every timer that has not been stopped.
func (c *fakeClock) FireAll() {
	c.mu.Lock()
	var due []func()
	for _, t := range c.timers {
		if !t.stopped {
			t.stopped = true
			due = append(due, t.f)
		}
	}
	c.mu.Unlock()
	for _, f := range due {
		f()
	}
}

func (c *fakeClock) Timers() []*fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*fakeTimer(nil), c.timers...)
}

func newTestController(t *testing.T, store Store, opts ...Option) (*Controller, *fakeClock) {
	t.Helper()
	opts = append([]Option{WithLogger(util.DiscardLogger())}, opts...)
	c := New(store, opts...)
	clock := &fakeClock{}
	c.afterFunc = clock.AfterFunc
	t.Cleanup(c.Close)
	return c, clock
}

func waitFor(t *testing.T, c *Controller, cond func(State) bool) State {
	t.Helper()
	require.Eventually(t, func() bool { return cond(c.State()) }, 2*time.Second, time.Millisecond)
	return c.State()
}

func pageOf(all []models.Project, page, size int) []models.Project {
	start := (page - 1) * size
	if start >= len(all) {
		return []models.Project{}
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func ids(items []models.Project) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func loaded(page int) func(State) bool {
	return func(s State) bool { return !s.Loading() && s.Page == page }
}

// blockUntil returns a store func that waits for release, then serves a
// page of all.
func blockUntil(release <-chan struct{}, all []models.Project) func(context.Context, int, int) ([]models.Project, error) {
	return func(ctx context.Context, page, size int) ([]models.Project, error) {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return pageOf(all, page, size), nil
	}
}

func TestPagesThroughTwentyFiveProjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 25)

	gomock.InOrder(
		store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(pageOf(all, 1, 10), nil),
		store.EXPECT().GetProjects(gomock.Any(), 2, 10).Return(pageOf(all, 2, 10), nil),
		store.EXPECT().GetProjects(gomock.Any(), 3, 10).Return(pageOf(all, 3, 10), nil),
	)

	c, _ := newTestController(t, store)
	c.Start()
	s := waitFor(t, c, loaded(1))
	require.Len(t, s.Items, 10)
	require.True(t, s.HasMore)

	c.OnLoadMore()
	s = waitFor(t, c, loaded(2))
	require.Equal(t, ids(all[:20]), ids(s.Items))
	require.True(t, s.HasMore)

	c.OnLoadMore()
	s = waitFor(t, c, loaded(3))
	require.Equal(t, ids(all), ids(s.Items))
	require.False(t, s.HasMore)
	require.NoError(t, s.LoadErr)

	// at the end: no fetch, no state change
	c.OnLoadMore()
	c.Dispatch(LoadMoreRequested{})
	s = c.State()
	require.False(t, s.LoadingMore)
	require.Equal(t, 3, s.Page)
	require.Len(t, s.Items, 25)
}

func TestExactMultipleNeedsOneEmptyPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 10)

	gomock.InOrder(
		store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(all, nil),
		store.EXPECT().GetProjects(gomock.Any(), 2, 10).Return([]models.Project{}, nil),
	)

	c, _ := newTestController(t, store)
	c.Start()
	require.True(t, waitFor(t, c, loaded(1)).HasMore)
	c.OnLoadMore()
	s := waitFor(t, c, loaded(2))
	require.False(t, s.HasMore)
	require.Len(t, s.Items, 10)
}

func TestPageSizeOption(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 7)

	store.EXPECT().GetProjects(gomock.Any(), 1, 3).Return(pageOf(all, 1, 3), nil)
	store.EXPECT().GetProjects(gomock.Any(), 2, 3).Return(pageOf(all, 2, 3), nil)

	c, _ := newTestController(t, store, WithPageSize(3))
	require.Equal(t, 3, c.PageSize())
	c.Start()
	waitFor(t, c, loaded(1))
	c.OnLoadMore()
	s := waitFor(t, c, loaded(2))
	require.Equal(t, ids(all[:6]), ids(s.Items))
}

func TestInitialLoadingBlocksLoadMore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 12)
	release := make(chan struct{})

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).DoAndReturn(blockUntil(release, all)).Times(1)

	c, _ := newTestController(t, store)
	c.Start()
	s := c.State()
	require.True(t, s.InitialLoading)
	require.Empty(t, s.Items)
	require.Equal(t, 0, s.Page)

	c.OnLoadMore()
	require.False(t, c.State().LoadingMore)

	close(release)
	s = waitFor(t, c, loaded(1))
	require.Len(t, s.Items, 10)
}

func TestDebounceCollapsesRapidQueries(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 10)
	found := testutil.Projects("abc", 2)

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(all, nil)
	store.EXPECT().SearchProjects(gomock.Any(), "abc", 1, 10).Return(found, nil).Times(1)

	c, clock := newTestController(t, store)
	c.Start()
	waitFor(t, c, loaded(1))

	c.OnQueryChanged("a")
	c.OnQueryChanged("ab")
	c.Dispatch(SearchQueryChanged{Text: "abc"})

	s := c.State()
	require.Equal(t, "abc", s.Query)
	require.Equal(t, "", s.ActiveQuery)
	require.False(t, s.InitialLoading)
	require.Equal(t, ids(all), ids(s.Items))

	timers := clock.Timers()
	require.Len(t, timers, 3)
	require.True(t, timers[0].stopped)
	require.True(t, timers[1].stopped)
	for _, tm := range timers {
		require.Equal(t, config.SearchDebounce, tm.delay)
	}

	// a superseded timer that fired anyway must not start a search
	timers[0].f()
	timers[1].f()
	require.False(t, c.State().InitialLoading)

	clock.FireAll()
	s = waitFor(t, c, func(s State) bool { return s.ActiveQuery == "abc" && !s.Loading() })
	require.Equal(t, ids(found), ids(s.Items))
	require.Equal(t, 1, s.Page)
	require.False(t, s.HasMore)
}

func TestNewSearchResetsList(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 30)
	found := testutil.Projects("q", 3)
	release := make(chan struct{})

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(pageOf(all, 1, 10), nil)
	store.EXPECT().GetProjects(gomock.Any(), 2, 10).Return(pageOf(all, 2, 10), nil)
	store.EXPECT().SearchProjects(gomock.Any(), "q", 1, 10).DoAndReturn(
		func(ctx context.Context, query string, page, size int) ([]models.Project, error) {
			<-release
			return found, nil
		})

	c, clock := newTestController(t, store)
	c.Start()
	waitFor(t, c, loaded(1))
	c.OnLoadMore()
	waitFor(t, c, loaded(2))

	c.OnQueryChanged("q")
	clock.FireAll()
	s := c.State()
	require.True(t, s.InitialLoading)
	require.Equal(t, 0, s.Page)
	require.Len(t, s.Items, 20, "items are replaced only when the fetch resolves")

	close(release)
	s = waitFor(t, c, loaded(1))
	require.Equal(t, ids(found), ids(s.Items))
	require.Equal(t, "q", s.ActiveQuery)
	require.False(t, s.HasMore)
}

func TestBlankQueryUsesPlainListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 4)

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(all, nil).Times(2)

	c, clock := newTestController(t, store)
	c.Start()
	waitFor(t, c, loaded(1))

	c.OnQueryChanged("   ")
	clock.FireAll()
	s := waitFor(t, c, func(s State) bool { return s.ActiveQuery == "   " && !s.Loading() })
	require.Len(t, s.Items, 4)
}

func TestLoadMoreIgnoredWhileInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 25)
	release := make(chan struct{})

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(pageOf(all, 1, 10), nil)
	store.EXPECT().GetProjects(gomock.Any(), 2, 10).DoAndReturn(blockUntil(release, all)).Times(1)

	c, _ := newTestController(t, store)
	c.Start()
	waitFor(t, c, loaded(1))

	c.OnLoadMore()
	require.True(t, c.State().LoadingMore)
	c.OnLoadMore()
	c.Dispatch(LoadMoreRequested{})

	close(release)
	s := waitFor(t, c, loaded(2))
	require.Len(t, s.Items, 20)
}

func TestLoadMoreFailureKeepsItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 25)
	boom := errors.New("disk on fire")

	gomock.InOrder(
		store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(pageOf(all, 1, 10), nil),
		store.EXPECT().GetProjects(gomock.Any(), 2, 10).Return(nil, boom),
		store.EXPECT().GetProjects(gomock.Any(), 2, 10).Return(pageOf(all, 2, 10), nil),
	)

	c, _ := newTestController(t, store)
	c.Start()
	waitFor(t, c, loaded(1))

	c.OnLoadMore()
	s := waitFor(t, c, func(s State) bool { return s.LoadErr != nil })
	require.ErrorIs(t, s.LoadErr, boom)
	require.False(t, s.LoadingMore)
	require.Equal(t, 1, s.Page)
	require.Len(t, s.Items, 10)
	require.True(t, s.HasMore, "a failed page keeps HasMore so the user can retry")

	c.Retry()
	s = waitFor(t, c, loaded(2))
	require.NoError(t, s.LoadErr)
	require.Equal(t, ids(all[:20]), ids(s.Items))

	// nothing left to retry
	c.Retry()
	require.False(t, c.State().Loading())
}

func TestFailedSearchKeepsPreviousResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 10)
	found := testutil.Projects("x", 2)
	boom := errors.New("locked")

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(all, nil)
	gomock.InOrder(
		store.EXPECT().SearchProjects(gomock.Any(), "x", 1, 10).Return(nil, boom),
		store.EXPECT().SearchProjects(gomock.Any(), "x", 1, 10).Return(found, nil),
	)

	c, clock := newTestController(t, store)
	c.Start()
	waitFor(t, c, loaded(1))

	c.OnQueryChanged("x")
	clock.FireAll()
	s := waitFor(t, c, func(s State) bool { return s.LoadErr != nil })
	require.False(t, s.InitialLoading)
	require.Equal(t, "x", s.Query)
	require.Equal(t, "", s.ActiveQuery)
	require.Equal(t, 1, s.Page)
	require.Equal(t, ids(all), ids(s.Items))
	require.True(t, s.HasMore)

	c.Retry()
	s = waitFor(t, c, func(s State) bool { return s.ActiveQuery == "x" && !s.Loading() })
	require.NoError(t, s.LoadErr)
	require.Equal(t, ids(found), ids(s.Items))
}

func TestLoadMoreAfterFailedSearchFollowsShownItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 25)

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(pageOf(all, 1, 10), nil)
	store.EXPECT().SearchProjects(gomock.Any(), "zzz", 1, 10).Return(nil, errors.New("timeout"))
	store.EXPECT().GetProjects(gomock.Any(), 2, 10).Return(pageOf(all, 2, 10), nil)

	c, clock := newTestController(t, store)
	c.Start()
	waitFor(t, c, loaded(1))

	c.OnQueryChanged("zzz")
	clock.FireAll()
	waitFor(t, c, func(s State) bool { return s.LoadErr != nil })

	c.OnLoadMore()
	s := waitFor(t, c, loaded(2))
	require.Equal(t, ids(all[:20]), ids(s.Items))
	require.Equal(t, "", s.ActiveQuery)
	require.NoError(t, s.LoadErr)
}

func TestStaleSearchResultDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	old := testutil.Projects("old", 10)
	fresh := testutil.Projects("new", 4)
	release := make(chan struct{})
	returned := make(chan struct{})
	var staleCtx context.Context

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).DoAndReturn(
		func(ctx context.Context, page, size int) ([]models.Project, error) {
			staleCtx = ctx
			<-release
			defer close(returned)
			return old, nil
		})
	store.EXPECT().SearchProjects(gomock.Any(), "new", 1, 10).Return(fresh, nil)

	c, clock := newTestController(t, store)
	c.Start()
	c.OnQueryChanged("new")
	clock.FireAll()

	s := waitFor(t, c, func(s State) bool { return s.ActiveQuery == "new" && !s.Loading() })
	require.Equal(t, ids(fresh), ids(s.Items))

	close(release)
	<-returned
	require.Error(t, staleCtx.Err(), "superseded fetch context should be cancelled")
	require.Never(t, func() bool {
		return len(c.State().Items) != len(fresh)
	}, 50*time.Millisecond, 5*time.Millisecond)
}

func TestReloadCancelsPendingDebounce(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	found := testutil.Projects("x", 1)

	store.EXPECT().SearchProjects(gomock.Any(), "x", 1, 10).Return(found, nil).Times(1)

	c, clock := newTestController(t, store)
	c.OnQueryChanged("x")
	c.Reload()
	waitFor(t, c, loaded(1))

	clock.FireAll()
	s := c.State()
	require.False(t, s.Loading())
	require.Equal(t, "x", s.ActiveQuery)
}

func TestSetDebounceAppliesToNextQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)

	c, clock := newTestController(t, store, WithDebounce(100*time.Millisecond))
	require.Equal(t, 100*time.Millisecond, c.Debounce())
	c.OnQueryChanged("a")
	c.SetDebounce(700 * time.Millisecond)
	c.OnQueryChanged("ab")

	timers := clock.Timers()
	require.Len(t, timers, 2)
	require.Equal(t, 100*time.Millisecond, timers[0].delay)
	require.Equal(t, 700*time.Millisecond, timers[1].delay)
}

func TestDebounceWithRealTimer(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	found := testutil.Projects("ab", 2)

	store.EXPECT().SearchProjects(gomock.Any(), "ab", 1, 10).Return(found, nil).Times(1)

	c := New(store, WithDebounce(20*time.Millisecond), WithLogger(util.DiscardLogger()))
	t.Cleanup(c.Close)
	c.OnQueryChanged("a")
	c.OnQueryChanged("ab")

	s := waitFor(t, c, func(s State) bool { return s.ActiveQuery == "ab" && !s.Loading() })
	require.Equal(t, ids(found), ids(s.Items))
}

func TestSubscribeDeliversLatestState(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	all := testutil.Projects("p", 3)

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(all, nil)

	c, _ := newTestController(t, store)
	ch, unsubscribe := c.Subscribe()

	first := <-ch
	require.Equal(t, 0, first.Page)
	require.True(t, first.HasMore)

	c.Start()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-ch:
			if s.Page == 1 && !s.Loading() {
				require.Len(t, s.Items, 3)
				unsubscribe()
				unsubscribe()
				for range ch {
				}
				return
			}
		case <-deadline:
			t.Fatalf("never received loaded state")
		}
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().GetProjects(gomock.Any(), 1, 10).Return(testutil.Projects("p", 2), nil)

	c, _ := newTestController(t, store)
	c.Start()
	s := waitFor(t, c, loaded(1))
	s.Items[0].Name = "mutated"
	require.NotEqual(t, "mutated", c.State().Items[0].Name)
}

func TestCloseCancelsInFlightFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	started := make(chan struct{})

	store.EXPECT().GetProjects(gomock.Any(), 1, 10).DoAndReturn(
		func(ctx context.Context, page, size int) ([]models.Project, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		})

	c, clock := newTestController(t, store)
	ch, _ := c.Subscribe()
	c.Start()
	<-started
	c.Close()

	// closed controller ignores further input
	c.OnQueryChanged("late")
	c.OnLoadMore()
	c.Start()
	require.Empty(t, clock.Timers())
	for range ch {
	}

	late, _ := c.Subscribe()
	_, ok := <-late
	require.False(t, ok)
}
