// Package artwork decides which image to show for a library item and builds the
// request URL for it.
package artwork

import (
	"github.com/mmcdole/kinoart/internal/domain"
)

// excludedBlurhashTypes never carry blurhash placeholders
var excludedBlurhashTypes = map[domain.ImageType]bool{
	domain.ImageLogo: true,
}

// ImageTag returns the tag of the image of the given type, or "" if there is none.
// index selects the backdrop when t is Backdrop. When checkParent is true and the
// item has no image of its own, the single inherited field for that type is used.
func ImageTag(item *domain.Item, t domain.ImageType, index int, checkParent bool) string {
	if item == nil {
		return ""
	}

	// People only have primary images
	if item.IsPerson() {
		if t == domain.ImagePrimary {
			return item.PrimaryImageTag
		}
		return ""
	}

	if tag := item.OwnTag(t); tag != "" {
		return tag
	}
	if t == domain.ImageBackdrop {
		if tag := indexTag(item.BackdropImageTags, index); tag != "" {
			return tag
		}
	}

	if !checkParent {
		return ""
	}

	switch t {
	case domain.ImagePrimary:
		return firstNonEmpty(item.AlbumPrimaryImageTag, item.ChannelPrimaryImageTag, item.ParentPrimaryImageTag)
	case domain.ImageArt:
		return item.ParentArtImageTag
	case domain.ImageBackdrop:
		return indexTag(item.ParentBackdropImageTags, index)
	case domain.ImageLogo:
		return item.ParentLogoImageTag
	case domain.ImageThumb:
		return item.ParentThumbImageTag
	default:
		return ""
	}
}

// ParentID returns the id of the closest ancestor, or "" if the item has none.
// The order of the candidates is significant: the first non-empty id wins.
func ParentID(item *domain.Item) string {
	if item == nil {
		return ""
	}
	return firstNonEmpty(
		item.AlbumID,
		item.ChannelID,
		item.SeriesID,
		item.ParentArtItemID,
		item.ParentPrimaryImageItemID,
		item.ParentThumbItemID,
		item.ParentBackdropItemID,
		item.ParentLogoItemID,
		item.SeasonID,
		item.ParentID,
	)
}

// Blurhash returns the blurhash of the image ImageTag would pick, or "" when there
// is no such image, no hash was reported for it, or the type never has one.
func Blurhash(item *domain.Item, t domain.ImageType, index int, checkParent bool) string {
	if item == nil || excludedBlurhashTypes[t] {
		return ""
	}
	tag := ImageTag(item, t, index, checkParent)
	return item.ImageBlurHashes.Lookup(t, tag)
}

func indexTag(tags []string, index int) string {
	if index < 0 || index >= len(tags) {
		return ""
	}
	return tags[index]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
