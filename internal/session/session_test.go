package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marchand/easel/internal/domain"
	applog "github.com/marchand/easel/internal/log"
	"github.com/marchand/easel/internal/store"
)

const fakeDataURL = "data:image/jpeg;base64,ZmFrZQ=="

func artwork(title string) *domain.Artwork {
	return &domain.Artwork{
		Title:    title,
		Artist:   "Claude Monet",
		Year:     "1875",
		ImageURL: "https://example.org/" + title + ".jpg",
		Source:   domain.SourceMet,
	}
}

// fakeFetcher hands out queued artworks in order, repeating the last one
type fakeFetcher struct {
	mu    sync.Mutex
	queue []*domain.Artwork
	err   error
	calls int
}

func (f *fakeFetcher) Random(ctx context.Context) (*domain.Artwork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	a := *f.queue[0]
	if len(f.queue) > 1 {
		f.queue = f.queue[1:]
	}
	return &a, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeEncoder optionally blocks on gate so tests can hold a refill open
type fakeEncoder struct {
	gate  chan struct{}
	err   error
	mu    sync.Mutex
	calls int
}

func (e *fakeEncoder) Encode(ctx context.Context, imageURL string) (string, error) {
	if e.gate != nil {
		<-e.gate
	}
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.err != nil {
		return "", e.err
	}
	return fakeDataURL, nil
}

func (e *fakeEncoder) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// fakeRenderer records render order and scripts image-load failures
type fakeRenderer struct {
	mu         sync.Mutex
	rendered   []string
	failTitles map[string]bool
	failAll    bool
	errorShown int
}

func (r *fakeRenderer) RenderArtwork(a *domain.Artwork) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rendered = append(r.rendered, a.Title)
	if r.failAll || r.failTitles[a.Title] {
		return errors.New("image failed to load")
	}
	return nil
}

func (r *fakeRenderer) ShowError() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errorShown++
}

func (r *fakeRenderer) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.rendered...)
}

func memStore(t *testing.T) *store.GalleryStore {
	t.Helper()
	s, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWarmStart(t *testing.T) {
	st := memStore(t)
	cached := artwork("Cached")
	cached.DataURL = fakeDataURL
	require.NoError(t, st.SaveArtwork(slotKey, cached))

	fetcher := &fakeFetcher{queue: []*domain.Artwork{artwork("Fresh")}}
	encoder := &fakeEncoder{gate: make(chan struct{})}
	renderer := &fakeRenderer{}
	ctrl := New(fetcher, encoder, st, renderer, applog.NullLogger())

	kind, err := ctrl.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, WarmStart, kind)

	// The cached artwork displayed without waiting on any fetch
	require.Equal(t, []string{"Cached"}, renderer.titles())

	// Delete-on-read: the slot is already evicted while the refill is
	// still held open by the gated encoder
	_, ok := st.Artwork(slotKey)
	require.False(t, ok, "slot must be evicted before the refill lands")

	close(encoder.gate)
	ctrl.Wait()

	next, ok := st.Artwork(slotKey)
	require.True(t, ok, "refill must write a new slot")
	require.Equal(t, "Fresh", next.Title)
	require.Equal(t, fakeDataURL, next.DataURL)
	require.Equal(t, 1, fetcher.callCount(), "only the refill should fetch")
}

func TestColdStart(t *testing.T) {
	st := memStore(t)
	fetcher := &fakeFetcher{queue: []*domain.Artwork{artwork("Fresh"), artwork("Next")}}
	encoder := &fakeEncoder{}
	renderer := &fakeRenderer{}
	ctrl := New(fetcher, encoder, st, renderer, applog.NullLogger())

	kind, err := ctrl.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, ColdStart, kind)
	require.Equal(t, []string{"Fresh"}, renderer.titles())

	ctrl.Wait()

	next, ok := st.Artwork(slotKey)
	require.True(t, ok)
	require.Equal(t, "Next", next.Title)
	require.Equal(t, fakeDataURL, next.DataURL)
}

func TestColdStartFallbackOnExhaustion(t *testing.T) {
	st := memStore(t)
	fetcher := &fakeFetcher{err: domain.ErrNoArtwork}
	encoder := &fakeEncoder{}
	renderer := &fakeRenderer{}
	ctrl := New(fetcher, encoder, st, renderer, applog.NullLogger())

	kind, err := ctrl.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, ColdStart, kind)
	require.Equal(t, []string{"Water Lilies"}, renderer.titles())

	ctrl.Wait()

	// The fallback is never cached
	require.Equal(t, 0, encoder.callCount())
	_, ok := st.Artwork(slotKey)
	require.False(t, ok)
}

func TestColdStartFallbackOnFetchError(t *testing.T) {
	st := memStore(t)
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	renderer := &fakeRenderer{}
	ctrl := New(fetcher, &fakeEncoder{}, st, renderer, applog.NullLogger())

	_, err := ctrl.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Water Lilies"}, renderer.titles())

	ctrl.Wait()
	_, ok := st.Artwork(slotKey)
	require.False(t, ok)
}

func TestRenderFailureRetriesWithFallback(t *testing.T) {
	st := memStore(t)
	fetcher := &fakeFetcher{queue: []*domain.Artwork{artwork("Fresh")}}
	renderer := &fakeRenderer{failTitles: map[string]bool{"Fresh": true}}
	ctrl := New(fetcher, &fakeEncoder{}, st, renderer, applog.NullLogger())

	_, err := ctrl.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Fresh", "Water Lilies"}, renderer.titles())
	require.Equal(t, 0, renderer.errorShown)

	ctrl.Wait()
}

func TestBrokenFallbackShowsError(t *testing.T) {
	st := memStore(t)
	fetcher := &fakeFetcher{err: domain.ErrNoArtwork}
	renderer := &fakeRenderer{failAll: true}
	ctrl := New(fetcher, &fakeEncoder{}, st, renderer, applog.NullLogger())

	_, err := ctrl.Start(context.Background())
	require.Error(t, err)
	require.Equal(t, []string{"Water Lilies"}, renderer.titles())
	require.Equal(t, 1, renderer.errorShown)

	ctrl.Wait()
}

func TestStaleSlotWithoutImageIsDiscarded(t *testing.T) {
	st := memStore(t)
	// A slot without an embedded image cannot render offline
	require.NoError(t, st.SaveArtwork(slotKey, artwork("Stale")))

	fetcher := &fakeFetcher{queue: []*domain.Artwork{artwork("Fresh")}}
	encoder := &fakeEncoder{gate: make(chan struct{})}
	renderer := &fakeRenderer{}
	ctrl := New(fetcher, encoder, st, renderer, applog.NullLogger())

	kind, err := ctrl.Start(context.Background())
	require.NoError(t, err)
	require.Equal(t, ColdStart, kind)
	require.Equal(t, []string{"Fresh"}, renderer.titles())

	_, ok := st.Artwork(slotKey)
	require.False(t, ok, "stale slot must be cleaned")

	close(encoder.gate)
	ctrl.Wait()
}

func TestRefillEncodeFailureLeavesSlotEmpty(t *testing.T) {
	st := memStore(t)
	fetcher := &fakeFetcher{queue: []*domain.Artwork{artwork("Fresh")}}
	encoder := &fakeEncoder{err: errors.New("image too large")}
	ctrl := New(fetcher, encoder, st, &fakeRenderer{}, applog.NullLogger())

	_, err := ctrl.Start(context.Background())
	require.NoError(t, err)

	ctrl.Wait()

	_, ok := st.Artwork(slotKey)
	require.False(t, ok, "failed refill must leave the slot empty")
}

func TestRefillSynchronous(t *testing.T) {
	st := memStore(t)
	fetcher := &fakeFetcher{queue: []*domain.Artwork{artwork("Next")}}
	ctrl := New(fetcher, &fakeEncoder{}, st, &fakeRenderer{}, applog.NullLogger())

	require.NoError(t, ctrl.Refill(context.Background()))

	next, ok := st.Artwork(slotKey)
	require.True(t, ok)
	require.Equal(t, "Next", next.Title)
	require.Equal(t, fakeDataURL, next.DataURL)

	// Exhaustion skips the refill without reporting an error
	empty := New(&fakeFetcher{err: domain.ErrNoArtwork}, &fakeEncoder{}, st, &fakeRenderer{}, applog.NullLogger())
	require.NoError(t, empty.Clear())
	require.NoError(t, empty.Refill(context.Background()))
	_, ok = st.Artwork(slotKey)
	require.False(t, ok)
}

func TestClear(t *testing.T) {
	st := memStore(t)
	require.NoError(t, st.SaveArtwork(slotKey, artwork("Cached")))

	ctrl := New(&fakeFetcher{err: domain.ErrNoArtwork}, &fakeEncoder{}, st, &fakeRenderer{}, applog.NullLogger())
	require.NoError(t, ctrl.Clear())

	_, ok := st.Artwork(slotKey)
	require.False(t, ok)
}
