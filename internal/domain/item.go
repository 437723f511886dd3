package domain

import (
	"fmt"
	"strings"
	"time"
)

// ItemKind is the Jellyfin BaseItemKind of an item
type ItemKind string

const (
	KindMovie            ItemKind = "Movie"
	KindSeries           ItemKind = "Series"
	KindSeason           ItemKind = "Season"
	KindEpisode          ItemKind = "Episode"
	KindMusicAlbum       ItemKind = "MusicAlbum"
	KindMusicArtist      ItemKind = "MusicArtist"
	KindMusicGenre       ItemKind = "MusicGenre"
	KindAudio            ItemKind = "Audio"
	KindFolder           ItemKind = "Folder"
	KindCollectionFolder ItemKind = "CollectionFolder"
	KindPhotoAlbum       ItemKind = "PhotoAlbum"
	KindPhoto            ItemKind = "Photo"
	KindPlaylist         ItemKind = "Playlist"
	KindVideo            ItemKind = "Video"
	KindStudio           ItemKind = "Studio"
	KindBoxSet           ItemKind = "BoxSet"
	KindTvChannel        ItemKind = "TvChannel"
	KindPerson           ItemKind = "Person"
)

// personKinds are the item and person types that identify a person record
var personKinds = map[ItemKind]bool{
	KindPerson:  true,
	"Actor":     true,
	"Director":  true,
	"Composer":  true,
	"Writer":    true,
	"GuestStar": true,
	"Producer":  true,
	"Conductor": true,
	"Lyricist":  true,
}

// MediaTypePhoto is the MediaType value Jellyfin reports for photos
const MediaTypePhoto = "Photo"

// BlurHashes maps image type -> image tag -> blurhash
type BlurHashes map[ImageType]map[string]string

// Lookup returns the blurhash stored for an exact (type, tag) pair
func (b BlurHashes) Lookup(t ImageType, tag string) string {
	if b == nil || tag == "" {
		return ""
	}
	return b[t][tag]
}

// Item is a library item (movie, show, season, episode, album, person, ...)
// carrying the image fields needed to pick artwork. Inherited fields point at the
// ancestor (series, season, album, channel, parent) that owns an image the item lacks.
type Item struct {
	ID                string
	Name              string
	Type              ItemKind
	MediaType         string
	Overview          string
	ProductionYear    int
	IndexNumber       int
	ParentIndexNumber int
	RunTime           time.Duration
	ChildCount        *int // nil when the server did not report it

	// Own images
	ImageTags               map[ImageType]string
	BackdropImageTags       []string
	PrimaryImageAspectRatio float64
	ImageBlurHashes         BlurHashes

	// Person records (cast lists) only carry a primary tag
	PrimaryImageTag string
	Role            string
	PersonRecord    bool

	// Ancestry
	ParentID   string
	SeriesID   string
	SeriesName string
	SeasonID   string
	AlbumID    string
	Album      string
	ChannelID  string

	// Inherited images
	SeriesPrimaryImageTag    string
	SeriesThumbImageTag      string
	AlbumPrimaryImageTag     string
	ChannelPrimaryImageTag   string
	ParentPrimaryImageTag    string
	ParentPrimaryImageItemID string
	ParentArtImageTag        string
	ParentArtItemID          string
	ParentThumbImageTag      string
	ParentThumbItemID        string
	ParentLogoImageTag       string
	ParentLogoItemID         string
	ParentBackdropImageTags  []string
	ParentBackdropItemID     string

	People []Person // cast and crew, only filled for a single fetched item
}

// IsPerson reports whether the item is a person record
func (it *Item) IsPerson() bool {
	if it == nil {
		return false
	}
	return it.PersonRecord || personKinds[it.Type]
}

// OwnTag returns the item's own tag for an image type, ignoring ancestors
func (it *Item) OwnTag(t ImageType) string {
	if it == nil || it.ImageTags == nil {
		return ""
	}
	return it.ImageTags[t]
}

// HasChildCount reports whether the server reported a child count equal to n
func (it *Item) HasChildCount(n int) bool {
	return it.ChildCount != nil && *it.ChildCount == n
}

// DisplayTitle returns the title shown in lists
func (it *Item) DisplayTitle() string {
	switch it.Type {
	case KindEpisode:
		if it.SeriesName != "" {
			return fmt.Sprintf("%s S%02dE%02d %s", it.SeriesName, it.ParentIndexNumber, it.IndexNumber, it.Name)
		}
	case KindMovie, KindSeries:
		if it.ProductionYear > 0 {
			return fmt.Sprintf("%s (%d)", it.Name, it.ProductionYear)
		}
	}
	return it.Name
}

// CanDrillDown returns true if the item has children worth browsing
func (it *Item) CanDrillDown() bool {
	switch it.Type {
	case KindSeries, KindSeason, KindMusicAlbum, KindMusicArtist, KindFolder,
		KindCollectionFolder, KindPhotoAlbum, KindPlaylist, KindBoxSet:
		return true
	}
	return false
}

// Person is an entry of an item's cast and crew list
type Person struct {
	ID              string
	Name            string
	Role            string
	Type            string
	PrimaryImageTag string
	ImageBlurHashes BlurHashes
}

// Item converts the person into an item flagged as a person record
func (p Person) Item() *Item {
	return &Item{
		ID:              p.ID,
		Name:            p.Name,
		Type:            ItemKind(p.Type),
		Role:            p.Role,
		PrimaryImageTag: p.PrimaryImageTag,
		ImageBlurHashes: p.ImageBlurHashes,
		PersonRecord:    true,
	}
}

// ParseItemKind normalizes a user-supplied kind ("episode", "musicalbum") to its canonical form
func ParseItemKind(s string) ItemKind {
	for _, k := range []ItemKind{
		KindMovie, KindSeries, KindSeason, KindEpisode, KindMusicAlbum, KindMusicArtist,
		KindMusicGenre, KindAudio, KindFolder, KindCollectionFolder, KindPhotoAlbum, KindPhoto,
		KindPlaylist, KindVideo, KindStudio, KindBoxSet, KindTvChannel, KindPerson,
	} {
		if strings.EqualFold(string(k), s) {
			return k
		}
	}
	return ItemKind(s)
}
