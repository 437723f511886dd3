package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mmcdole/kinoart/internal/artwork"
	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/store"
)

type stubRepo struct {
	items     map[string]*domain.Item
	views     []*domain.Item
	children  map[string][]*domain.Item
	search    []*domain.Item
	err       error
	itemCalls int
	listCalls int
}

func (r *stubRepo) GetViews(ctx context.Context) ([]*domain.Item, error) {
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	return r.views, nil
}

func (r *stubRepo) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	r.itemCalls++
	if r.err != nil {
		return nil, r.err
	}
	item, ok := r.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *stubRepo) GetChildren(ctx context.Context, parentID string) ([]*domain.Item, error) {
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	return r.children[parentID], nil
}

func (r *stubRepo) Search(ctx context.Context, query string) ([]*domain.Item, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.search, nil
}

func newTestService(t *testing.T, repo *stubRepo) *ArtworkService {
	t.Helper()
	st, err := store.NewItemStore("", "")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })
	resolver, err := artwork.NewResolver("http://jf.local", nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewArtworkService(repo, st, resolver, nil)
}

func movie(id, name string) *domain.Item {
	return &domain.Item{
		ID:        id,
		Name:      name,
		Type:      domain.KindMovie,
		ImageTags: map[domain.ImageType]string{domain.ImagePrimary: "p-" + id},
	}
}

func TestItem_CachesAfterFirstFetch(t *testing.T) {
	repo := &stubRepo{items: map[string]*domain.Item{"m1": movie("m1", "Alien")}}
	svc := newTestService(t, repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		item, err := svc.Item(ctx, "m1")
		if err != nil {
			t.Fatal(err)
		}
		if item.Name != "Alien" {
			t.Errorf("Name = %q", item.Name)
		}
	}
	if repo.itemCalls != 1 {
		t.Errorf("repository called %d times, want 1", repo.itemCalls)
	}

	svc.Refresh("m1")
	if _, err := svc.Item(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	if repo.itemCalls != 2 {
		t.Errorf("refresh did not force a fetch, calls = %d", repo.itemCalls)
	}
}

func TestItem_NotFound(t *testing.T) {
	svc := newTestService(t, &stubRepo{})
	_, err := svc.Item(context.Background(), "missing")
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
}

func TestDetail_FallsBackWhenOffline(t *testing.T) {
	repo := &stubRepo{items: map[string]*domain.Item{"m1": movie("m1", "Alien")}}
	svc := newTestService(t, repo)
	ctx := context.Background()

	if _, err := svc.Detail(ctx, "m1"); err != nil {
		t.Fatal(err)
	}

	repo.err = domain.ErrServerOffline
	item, err := svc.Detail(ctx, "m1")
	if err != nil {
		t.Fatalf("expected cached fallback, got %v", err)
	}
	if item.ID != "m1" {
		t.Errorf("ID = %q", item.ID)
	}

	if _, err := svc.Detail(ctx, "other"); !errors.Is(err, domain.ErrServerOffline) {
		t.Errorf("uncached item offline: err = %v", err)
	}

	repo.err = domain.ErrAuthFailed
	if _, err := svc.Detail(ctx, "m1"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Errorf("auth failures must not fall back, err = %v", err)
	}
}

func TestViewsAndChildren(t *testing.T) {
	repo := &stubRepo{
		views: []*domain.Item{{ID: "lib", Name: "Movies", Type: domain.KindCollectionFolder}},
		children: map[string][]*domain.Item{
			"lib": {movie("m1", "Alien"), movie("m2", "Aliens")},
		},
	}
	svc := newTestService(t, repo)
	ctx := context.Background()

	views, err := svc.Views(ctx)
	if err != nil || len(views) != 1 {
		t.Fatalf("Views = %v, %v", views, err)
	}
	if _, err := svc.Views(ctx); err != nil {
		t.Fatal(err)
	}

	children, err := svc.Children(ctx, "lib")
	if err != nil || len(children) != 2 {
		t.Fatalf("Children = %v, %v", children, err)
	}
	if _, err := svc.Children(ctx, "lib"); err != nil {
		t.Fatal(err)
	}
	if repo.listCalls != 2 {
		t.Errorf("list calls = %d, want 2 (one per list)", repo.listCalls)
	}

	// Children are cached as items too
	if _, err := svc.Item(ctx, "m2"); err != nil {
		t.Fatal(err)
	}
	if repo.itemCalls != 0 {
		t.Errorf("item fetched despite list cache, calls = %d", repo.itemCalls)
	}

	svc.Refresh("")
	if _, err := svc.Children(ctx, "lib"); err != nil {
		t.Fatal(err)
	}
	if repo.listCalls != 3 {
		t.Errorf("full refresh did not drop lists, calls = %d", repo.listCalls)
	}
}

func TestImageInfo(t *testing.T) {
	ep := &domain.Item{
		ID:                    "ep1",
		Name:                  "Pilot",
		Type:                  domain.KindEpisode,
		SeriesID:              "s1",
		SeriesThumbImageTag:   "st",
		ParentThumbItemID:     "s1",
		ParentThumbImageTag:   "pt",
		SeriesPrimaryImageTag: "sp",
		ImageBlurHashes:       domain.BlurHashes{domain.ImageThumb: {"pt": "LEHV6nWB2yk8pyo0adR*.7kCMdnj"}},
	}
	repo := &stubRepo{items: map[string]*domain.Item{"ep1": ep}}
	svc := newTestService(t, repo)

	info, sel, err := svc.ImageInfo(context.Background(), "ep1", artwork.Options{PreferThumb: true})
	if err != nil {
		t.Fatal(err)
	}
	if sel.Type != domain.ImageThumb || sel.ItemID != "s1" {
		t.Errorf("selection = %+v", sel)
	}
	if !strings.HasPrefix(info.URL, "http://jf.local/Items/s1/Images/Thumb?") {
		t.Errorf("URL = %q", info.URL)
	}
	if info.Tag != sel.Tag {
		t.Errorf("Tag = %q, selection tag %q", info.Tag, sel.Tag)
	}

	if _, _, err := svc.ImageInfo(context.Background(), "nope", artwork.Options{}); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestLogo(t *testing.T) {
	item := movie("m1", "Alien")
	item.ParentLogoImageTag = "lt"
	item.ParentLogoItemID = "col"
	svc := newTestService(t, &stubRepo{items: map[string]*domain.Item{"m1": item}})

	info, err := svc.Logo(context.Background(), "m1", artwork.LogoOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(info.URL, "http://jf.local/Items/col/Images/Logo?imgTag=lt") {
		t.Errorf("URL = %q", info.URL)
	}
	if info.Blurhash != "" {
		t.Errorf("logo blurhash = %q, want empty", info.Blurhash)
	}
}

func TestBackdropHash(t *testing.T) {
	ep := &domain.Item{
		ID:                      "ep",
		ParentBackdropItemID:    "s",
		ParentBackdropImageTags: []string{"b0"},
		ImageBlurHashes:         domain.BlurHashes{domain.ImageBackdrop: {"b0": "hash"}},
	}
	if got := BackdropHash(ep); got != "hash" {
		t.Errorf("BackdropHash = %q", got)
	}
	if got := BackdropHash(&domain.Item{ID: "x"}); got != "" {
		t.Errorf("BackdropHash without backdrops = %q", got)
	}
}

func TestSearch(t *testing.T) {
	repo := &stubRepo{search: []*domain.Item{
		movie("m3", "The Alien Report"),
		movie("m2", "Aliens"),
		movie("m1", "Alien"),
	}}
	svc := newTestService(t, repo)
	ctx := context.Background()

	results, err := svc.Search(ctx, "alien")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"m1", "m2", "m3"}
	if len(results) != len(want) {
		t.Fatalf("got %d results", len(results))
	}
	for i, id := range want {
		if results[i].ID != id {
			t.Errorf("results[%d] = %s, want %s", i, results[i].ID, id)
		}
	}

	if got, _ := svc.Search(ctx, "   "); got != nil {
		t.Errorf("blank query returned %v", got)
	}

	// Offline search uses the items cached above
	repo.err = domain.ErrServerOffline
	results, err = svc.Search(ctx, "aliens")
	if err != nil {
		t.Fatalf("offline search should not fail: %v", err)
	}
	if len(results) != 1 || results[0].ID != "m2" {
		t.Errorf("offline results = %v", results)
	}
}

func TestFilterCached(t *testing.T) {
	repo := &stubRepo{children: map[string][]*domain.Item{
		"lib": {movie("a", "Arrival"), movie("b", "Blade Runner"), movie("c", "Brazil")},
	}}
	svc := newTestService(t, repo)
	if _, err := svc.Children(context.Background(), "lib"); err != nil {
		t.Fatal(err)
	}

	got := svc.FilterCached("br")
	if len(got) != 2 {
		t.Fatalf("FilterCached(br) = %v", got)
	}
	// Shorter match distance first
	if got[0].ID != "c" {
		t.Errorf("first match = %s, want c", got[0].ID)
	}
	if svc.FilterCached("") != nil {
		t.Error("empty query should return nil")
	}
}
