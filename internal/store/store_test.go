package store

import (
	"testing"

	"github.com/mmcdole/kinoart/internal/domain"
)

func intPtr(n int) *int { return &n }

func sampleItems() []*domain.Item {
	return []*domain.Item{
		{
			ID:                      "ep2",
			Name:                    "Second",
			Type:                    domain.KindEpisode,
			ChildCount:              intPtr(0),
			ImageTags:               map[domain.ImageType]string{domain.ImagePrimary: "p2"},
			ImageBlurHashes:         domain.BlurHashes{domain.ImagePrimary: {"p2": "hash"}},
			ParentBackdropImageTags: []string{"bd"},
		},
		{ID: "ep1", Name: "First", Type: domain.KindEpisode},
	}
}

func forEachMode(t *testing.T, fn func(t *testing.T, s *ItemStore)) {
	t.Run("memory", func(t *testing.T) {
		s, err := NewItemStore("", "")
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()
		fn(t, s)
	})
	t.Run("bolt", func(t *testing.T) {
		s, err := NewItemStore(t.TempDir(), "http://jf.local:8096")
		if err != nil {
			t.Fatal(err)
		}
		defer s.Close()
		fn(t, s)
	})
}

func TestItemStore_Items(t *testing.T) {
	forEachMode(t, func(t *testing.T, s *ItemStore) {
		if _, ok := s.GetItem("ep2"); ok {
			t.Fatal("empty store returned an item")
		}

		if err := s.SaveItem(sampleItems()[0]); err != nil {
			t.Fatalf("SaveItem: %v", err)
		}
		got, ok := s.GetItem("ep2")
		if !ok {
			t.Fatal("item not found after save")
		}
		if got.ChildCount == nil || *got.ChildCount != 0 {
			t.Errorf("ChildCount lost: %v", got.ChildCount)
		}
		if got.ImageBlurHashes.Lookup(domain.ImagePrimary, "p2") != "hash" {
			t.Errorf("blurhashes lost: %+v", got.ImageBlurHashes)
		}
		if len(got.ParentBackdropImageTags) != 1 {
			t.Errorf("parent backdrops lost: %+v", got.ParentBackdropImageTags)
		}

		if err := s.SaveItem(&domain.Item{}); err == nil {
			t.Error("expected error for item without id")
		}
	})
}

func TestItemStore_Children(t *testing.T) {
	forEachMode(t, func(t *testing.T, s *ItemStore) {
		if err := s.SaveChildren("season1", sampleItems()); err != nil {
			t.Fatalf("SaveChildren: %v", err)
		}
		children, ok := s.GetChildren("season1")
		if !ok || len(children) != 2 {
			t.Fatalf("children = %v, %v", children, ok)
		}
		if children[0].ID != "ep2" || children[1].ID != "ep1" {
			t.Errorf("order not preserved: %s, %s", children[0].ID, children[1].ID)
		}

		// Views live under the empty parent
		if err := s.SaveChildren("", []*domain.Item{{ID: "lib", Name: "Movies"}}); err != nil {
			t.Fatal(err)
		}
		if views, ok := s.GetChildren(""); !ok || len(views) != 1 {
			t.Errorf("views = %v, %v", views, ok)
		}

		s.Invalidate("ep1")
		if _, ok := s.GetChildren("season1"); ok {
			t.Error("list with an invalidated record should miss")
		}

		all := s.AllItems()
		if len(all) != 2 || all[0].Name != "Movies" || all[1].Name != "Second" {
			t.Errorf("AllItems = %v", all)
		}
	})
}

func TestItemStore_KeepsPeople(t *testing.T) {
	forEachMode(t, func(t *testing.T, s *ItemStore) {
		full := &domain.Item{ID: "m", Name: "Movie", People: []domain.Person{{ID: "p", Name: "Lead"}}}
		if err := s.SaveItem(full); err != nil {
			t.Fatal(err)
		}
		if err := s.SaveChildren("lib", []*domain.Item{{ID: "m", Name: "Movie"}}); err != nil {
			t.Fatal(err)
		}
		got, _ := s.GetItem("m")
		if len(got.People) != 1 {
			t.Errorf("people dropped by list save: %+v", got)
		}
	})
}

func TestItemStore_InvalidateAll(t *testing.T) {
	forEachMode(t, func(t *testing.T, s *ItemStore) {
		if err := s.SaveChildren("p", sampleItems()); err != nil {
			t.Fatal(err)
		}
		s.InvalidateAll()
		if _, ok := s.GetChildren("p"); ok {
			t.Error("children survived InvalidateAll")
		}
		if n := len(s.AllItems()); n != 0 {
			t.Errorf("AllItems after InvalidateAll = %d", n)
		}
		// Store remains usable
		if err := s.SaveItem(&domain.Item{ID: "x"}); err != nil {
			t.Errorf("SaveItem after InvalidateAll: %v", err)
		}
	})
}

func TestItemStore_Persistence(t *testing.T) {
	dir := t.TempDir()
	s, err := NewItemStore(dir, "http://jf")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveChildren("", sampleItems()); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewItemStore(dir, "http://jf/")
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	if views, ok := reopened.GetChildren(""); !ok || len(views) != 2 {
		t.Errorf("views after reopen = %v, %v", views, ok)
	}

	other, err := NewItemStore(dir, "http://other")
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()
	if _, ok := other.GetChildren(""); ok {
		t.Error("caches of different servers must not mix")
	}
}
