package jellyfin

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/kinoart/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(server.URL+"/", "test-token", "user-1", discardLogger())
	c.retryDelay = time.Millisecond
	return c
}

const episodeJSON = `{
  "Id": "ep1",
  "Name": "Pilot",
  "Type": "Episode",
  "MediaType": "Video",
  "IndexNumber": 1,
  "ParentIndexNumber": 1,
  "RunTimeTicks": 27000000000,
  "ChildCount": 0,
  "SeriesId": "show1",
  "SeriesName": "Show",
  "SeasonId": "season1",
  "ImageTags": {"Primary": "ep-primary"},
  "PrimaryImageAspectRatio": 1.7777777777777777,
  "ImageBlurHashes": {"Primary": {"ep-primary": "LEHV6nWB2yk8pyo0adR*.7kCMdnj"}},
  "SeriesPrimaryImageTag": "show-primary",
  "ParentBackdropImageTags": ["show-bd"],
  "ParentBackdropItemId": "show1",
  "ParentLogoImageTag": "show-logo",
  "ParentLogoItemId": "show1",
  "ParentThumbItemId": "show1",
  "ParentThumbImageTag": "show-thumb",
  "People": [
    {"Id": "p1", "Name": "Lead", "Role": "Hero", "Type": "Actor", "PrimaryImageTag": "p1-tag",
     "ImageBlurHashes": {"Primary": {"p1-tag": "hash"}}}
  ]
}`

func TestGetItem(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Users/user-1/Items/ep1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("X-Emby-Authorization"); !strings.Contains(auth, `Token="test-token"`) {
			t.Errorf("missing token in auth header: %s", auth)
		}
		io.WriteString(w, episodeJSON)
	}))

	item, err := client.GetItem(context.Background(), "ep1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if item.Type != domain.KindEpisode || item.Name != "Pilot" {
		t.Errorf("item = %+v", item)
	}
	if item.ChildCount == nil || *item.ChildCount != 0 {
		t.Errorf("ChildCount = %v, want pointer to 0", item.ChildCount)
	}
	if item.OwnTag(domain.ImagePrimary) != "ep-primary" {
		t.Errorf("primary tag = %q", item.OwnTag(domain.ImagePrimary))
	}
	if item.ImageBlurHashes.Lookup(domain.ImagePrimary, "ep-primary") == "" {
		t.Error("blurhash not mapped")
	}
	if item.RunTime != 45*time.Minute {
		t.Errorf("RunTime = %v", item.RunTime)
	}
	if item.ParentBackdropItemID != "show1" || item.ParentLogoImageTag != "show-logo" || item.ParentThumbImageTag != "show-thumb" {
		t.Errorf("inherited fields not mapped: %+v", item)
	}
	if len(item.People) != 1 || item.People[0].PrimaryImageTag != "p1-tag" {
		t.Fatalf("people = %+v", item.People)
	}
	if !item.People[0].Item().IsPerson() {
		t.Error("person entry not flagged as person")
	}
}

func TestGetItem_ChildCountAbsent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"Id":"m1","Name":"Movie","Type":"Movie"}`)
	}))

	item, err := client.GetItem(context.Background(), "m1")
	if err != nil {
		t.Fatal(err)
	}
	if item.ChildCount != nil {
		t.Errorf("ChildCount = %v, want nil", *item.ChildCount)
	}
}

func TestGetItem_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, domain.ErrItemNotFound},
		{"unauthorized", http.StatusUnauthorized, domain.ErrAuthFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			_, err := client.GetItem(context.Background(), "x")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDoRequest_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(ItemsResponse{Items: []Item{{ID: "lib", Name: "Movies", Type: "CollectionFolder"}}})
	}))

	views, err := client.GetViews(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	if len(views) != 1 || views[0].Type != domain.KindCollectionFolder {
		t.Errorf("views = %+v", views)
	}
}

func TestDoRequest_GivesUp(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	if _, err := client.GetViews(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != maxRetries+1 {
		t.Errorf("calls = %d, want %d", calls.Load(), maxRetries+1)
	}
}

func TestDoRequest_Offline(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, "t", "u", discardLogger())
	if _, err := client.GetViews(context.Background()); !errors.Is(err, domain.ErrServerOffline) {
		t.Errorf("err = %v, want ErrServerOffline", err)
	}
}

func TestGetChildren(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/Users/user-1/Items" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if q.Get("ParentId") != "show1" {
			t.Errorf("ParentId = %q", q.Get("ParentId"))
		}
		if !strings.Contains(q.Get("Fields"), "ChildCount") || !strings.Contains(q.Get("Fields"), "PrimaryImageAspectRatio") {
			t.Errorf("Fields = %q", q.Get("Fields"))
		}
		if q.Get("EnableImageTypes") == "" {
			t.Error("EnableImageTypes not set")
		}
		if q.Has("ImageTypeLimit") {
			t.Errorf("ImageTypeLimit = %q, backdrops would be truncated", q.Get("ImageTypeLimit"))
		}
		json.NewEncoder(w).Encode(ItemsResponse{Items: []Item{
			{ID: "s1", Name: "Season 1", Type: "Season", ImageTags: map[string]string{"Thumb": "t"}, BackdropImageTags: []string{"bd0", "bd1"}},
			{ID: "s2", Name: "Season 2", Type: "Season"},
		}})
	}))

	children, err := client.GetChildren(context.Background(), "show1")
	if err != nil {
		t.Fatal(err)
	}
	if len(children) != 2 || children[0].OwnTag(domain.ImageThumb) != "t" {
		t.Errorf("children = %+v", children)
	}
	if tags := children[0].BackdropImageTags; len(tags) != 2 || tags[1] != "bd1" {
		t.Errorf("BackdropImageTags = %v", tags)
	}
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("searchTerm") != "alien" {
			t.Errorf("searchTerm = %q", r.URL.Query().Get("searchTerm"))
		}
		json.NewEncoder(w).Encode(ItemsResponse{Items: []Item{{ID: "m", Name: "Alien", Type: "Movie"}}})
	}))

	items, err := client.Search(context.Background(), "alien")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Name != "Alien" {
		t.Errorf("items = %+v", items)
	}
}

func TestPublicInfo(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/System/Info/Public" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		io.WriteString(w, `{"ServerName":"home","Version":"10.9.0","ProductName":"Jellyfin Server","Id":"abc"}`)
	}))

	info, err := client.PublicInfo(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if info.ServerName != "home" || info.Version != "10.9.0" {
		t.Errorf("info = %+v", info)
	}

	other := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `{"ProductName":"Something Else"}`)
	}))
	if _, err := other.PublicInfo(context.Background()); err == nil {
		t.Error("expected error for non-Jellyfin server")
	}
}

func TestMapItem_PersonItem(t *testing.T) {
	item := MapItem(Item{ID: "p", Type: "Person", ImageTags: map[string]string{"Primary": "face"}})
	if !item.IsPerson() || item.PrimaryImageTag != "face" {
		t.Errorf("item = %+v", item)
	}
}

func TestAuthenticate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Users/AuthenticateByName" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["Username"] != "me" || body["Pw"] != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok", User: User{ID: "u1", Name: "me"}})
	}))
	defer server.Close()

	flow := NewAuthFlow(discardLogger())
	res, err := flow.Authenticate(context.Background(), server.URL, "me", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if *res != (domain.AuthResult{Token: "tok", UserID: "u1", Username: "me"}) {
		t.Errorf("result = %+v", res)
	}

	if _, err := flow.Authenticate(context.Background(), server.URL, "me", "wrong"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Errorf("err = %v, want ErrAuthFailed", err)
	}
}

func TestAuthFlow_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(AuthResponse{AccessToken: "tok", User: User{ID: "u1", Name: "me"}})
	}))
	defer server.Close()

	var out strings.Builder
	flow := NewAuthFlow(discardLogger())
	flow.in = bufio.NewReader(strings.NewReader("me\n"))
	flow.out = &out
	flow.readPassword = func() (string, error) { return "pw", nil }

	res, err := flow.Run(context.Background(), server.URL+"/")
	if err != nil {
		t.Fatal(err)
	}
	if res.Token != "tok" {
		t.Errorf("token = %q", res.Token)
	}
	if !strings.Contains(out.String(), "Signed in as me") {
		t.Errorf("output = %q", out.String())
	}
}

func TestPromptForServerURL(t *testing.T) {
	var out strings.Builder
	got, err := PromptForServerURL(strings.NewReader("  http://jf:8096 \n"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if got != "http://jf:8096" {
		t.Errorf("url = %q", got)
	}
}
