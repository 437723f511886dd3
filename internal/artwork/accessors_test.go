package artwork

import (
	"testing"

	"github.com/mmcdole/kinoart/internal/domain"
)

func TestImageTag(t *testing.T) {
	episode := &domain.Item{
		ID:                      "ep",
		Type:                    domain.KindEpisode,
		ImageTags:               map[domain.ImageType]string{domain.ImagePrimary: "own-primary"},
		BackdropImageTags:       []string{"bd0", "bd1"},
		ParentBackdropImageTags: []string{"pbd0"},
		AlbumPrimaryImageTag:    "album-primary",
		ParentPrimaryImageTag:   "parent-primary",
		ParentArtImageTag:       "parent-art",
		ParentLogoImageTag:      "parent-logo",
		ParentThumbImageTag:     "parent-thumb",
	}
	bare := &domain.Item{
		ID:                      "bare",
		ChannelPrimaryImageTag:  "channel-primary",
		ParentPrimaryImageTag:   "parent-primary",
		ParentBackdropImageTags: []string{"pbd0", "pbd1"},
	}

	tests := []struct {
		name        string
		item        *domain.Item
		imageType   domain.ImageType
		index       int
		checkParent bool
		want        string
	}{
		{"own primary wins", episode, domain.ImagePrimary, 0, true, "own-primary"},
		{"backdrop by index", episode, domain.ImageBackdrop, 1, true, "bd1"},
		{"backdrop index beyond own and parent tags", episode, domain.ImageBackdrop, 5, true, ""},
		{"parent art", episode, domain.ImageArt, 0, true, "parent-art"},
		{"parent logo", episode, domain.ImageLogo, 0, true, "parent-logo"},
		{"parent thumb", episode, domain.ImageThumb, 0, true, "parent-thumb"},
		{"parent lookup disabled", episode, domain.ImageThumb, 0, false, ""},
		{"album before channel before parent", bare, domain.ImagePrimary, 0, true, "channel-primary"},
		{"parent backdrop by index", bare, domain.ImageBackdrop, 1, true, "pbd1"},
		{"unknown type has no fallback", bare, domain.ImageDisc, 0, true, ""},
		{"nil item", nil, domain.ImagePrimary, 0, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageTag(tt.item, tt.imageType, tt.index, tt.checkParent)
			if got != tt.want {
				t.Errorf("ImageTag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageTag_AlbumPrimaryFirst(t *testing.T) {
	item := &domain.Item{
		AlbumPrimaryImageTag:   "album",
		ChannelPrimaryImageTag: "channel",
		ParentPrimaryImageTag:  "parent",
	}
	if got := ImageTag(item, domain.ImagePrimary, 0, true); got != "album" {
		t.Errorf("ImageTag() = %q, want album", got)
	}
}

func TestImageTag_Person(t *testing.T) {
	person := domain.Person{ID: "p", Name: "Someone", Role: "Self", PrimaryImageTag: "p1"}.Item()
	// A person with parent-like fields must still never inherit
	person.ParentThumbImageTag = "ignored"

	for _, checkParent := range []bool{true, false} {
		if got := ImageTag(person, domain.ImagePrimary, 0, checkParent); got != "p1" {
			t.Errorf("checkParent=%v: primary = %q, want p1", checkParent, got)
		}
		for _, other := range []domain.ImageType{domain.ImageThumb, domain.ImageBackdrop, domain.ImageLogo, domain.ImageArt, domain.ImageBanner} {
			if got := ImageTag(person, other, 0, checkParent); got != "" {
				t.Errorf("checkParent=%v: %s = %q, want empty", checkParent, other, got)
			}
		}
	}
}

func TestImageTag_PersonKindWithoutRecord(t *testing.T) {
	item := &domain.Item{Type: "Actor", PrimaryImageTag: "a1", ImageTags: map[domain.ImageType]string{domain.ImageThumb: "t"}}
	if got := ImageTag(item, domain.ImageThumb, 0, true); got != "" {
		t.Errorf("actor thumb = %q, want empty", got)
	}
	if got := ImageTag(item, domain.ImagePrimary, 0, true); got != "a1" {
		t.Errorf("actor primary = %q, want a1", got)
	}
}

func TestParentID_Order(t *testing.T) {
	full := domain.Item{
		AlbumID:                  "album",
		ChannelID:                "channel",
		SeriesID:                 "series",
		ParentArtItemID:          "art",
		ParentPrimaryImageItemID: "primary",
		ParentThumbItemID:        "thumb",
		ParentBackdropItemID:     "backdrop",
		ParentLogoItemID:         "logo",
		SeasonID:                 "season",
		ParentID:                 "parent",
	}

	// Clear fields one at a time in priority order; the next one must surface
	steps := []struct {
		clear func(*domain.Item)
		want  string
	}{
		{func(*domain.Item) {}, "album"},
		{func(i *domain.Item) { i.AlbumID = "" }, "channel"},
		{func(i *domain.Item) { i.ChannelID = "" }, "series"},
		{func(i *domain.Item) { i.SeriesID = "" }, "art"},
		{func(i *domain.Item) { i.ParentArtItemID = "" }, "primary"},
		{func(i *domain.Item) { i.ParentPrimaryImageItemID = "" }, "thumb"},
		{func(i *domain.Item) { i.ParentThumbItemID = "" }, "backdrop"},
		{func(i *domain.Item) { i.ParentBackdropItemID = "" }, "logo"},
		{func(i *domain.Item) { i.ParentLogoItemID = "" }, "season"},
		{func(i *domain.Item) { i.SeasonID = "" }, "parent"},
		{func(i *domain.Item) { i.ParentID = "" }, ""},
	}

	item := full
	for _, step := range steps {
		step.clear(&item)
		if got := ParentID(&item); got != step.want {
			t.Fatalf("ParentID() = %q, want %q", got, step.want)
		}
	}

	if got := ParentID(nil); got != "" {
		t.Errorf("ParentID(nil) = %q", got)
	}
}

func TestBlurhash(t *testing.T) {
	item := &domain.Item{
		ImageTags: map[domain.ImageType]string{
			domain.ImagePrimary: "p",
			domain.ImageLogo:    "l",
		},
		ParentBackdropImageTags: []string{"pb"},
		ImageBlurHashes: domain.BlurHashes{
			domain.ImagePrimary:  {"p": "primary-hash"},
			domain.ImageLogo:     {"l": "logo-hash"},
			domain.ImageBackdrop: {"pb": "backdrop-hash"},
		},
	}

	if got := Blurhash(item, domain.ImagePrimary, 0, true); got != "primary-hash" {
		t.Errorf("primary blurhash = %q", got)
	}
	if got := Blurhash(item, domain.ImageBackdrop, 0, true); got != "backdrop-hash" {
		t.Errorf("inherited backdrop blurhash = %q", got)
	}
	if got := Blurhash(item, domain.ImageBackdrop, 0, false); got != "" {
		t.Errorf("backdrop blurhash without parent = %q, want empty", got)
	}
	if got := Blurhash(item, domain.ImageLogo, 0, true); got != "" {
		t.Errorf("logo blurhash = %q, logos never carry one", got)
	}
	if got := Blurhash(item, domain.ImageThumb, 0, true); got != "" {
		t.Errorf("missing thumb blurhash = %q", got)
	}
}

func TestShapes(t *testing.T) {
	aspects := map[domain.CardShape]float64{
		domain.ShapePortrait: 2.0 / 3.0,
		domain.ShapeThumb:    16.0 / 9.0,
		domain.ShapeBanner:   1000.0 / 185.0,
		domain.ShapeSquare:   1,
		"hexagon":            1,
	}
	for shape, want := range aspects {
		if got := DesiredAspect(shape); got != want {
			t.Errorf("DesiredAspect(%q) = %v, want %v", shape, got, want)
		}
	}

	kinds := map[domain.ItemKind]domain.CardShape{
		domain.KindMusicAlbum: domain.ShapeSquare,
		"audio":               domain.ShapeSquare,
		domain.KindPlaylist:   domain.ShapeSquare,
		domain.KindEpisode:    domain.ShapeThumb,
		domain.KindStudio:     domain.ShapeThumb,
		domain.KindMovie:      domain.ShapePortrait,
		"":                    domain.ShapePortrait,
	}
	for kind, want := range kinds {
		if got := ShapeFromItemType(kind); got != want {
			t.Errorf("ShapeFromItemType(%q) = %q, want %q", kind, got, want)
		}
	}

	if got := ParseShape("Banner"); got != domain.ShapeBanner {
		t.Errorf("ParseShape(Banner) = %q", got)
	}
	if got := ParseShape("thumb-card"); got != domain.ShapeThumb {
		t.Errorf("ParseShape(thumb-card) = %q", got)
	}
	if got := ParseShape("circle"); got != "" {
		t.Errorf("ParseShape(circle) = %q", got)
	}
}
