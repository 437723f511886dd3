package artwork

import (
	"math"

	"github.com/mmcdole/kinoart/internal/domain"
)

// RuleNone is reported when no rule selected an image
const RuleNone = "none"

// selectOptions is Options with defaults applied
type selectOptions struct {
	shape          domain.CardShape
	preferThumb    bool
	preferBanner   bool
	preferLogo     bool
	preferBackdrop bool
	inheritThumb   bool
	width          int
	tag            string
}

// rule is one row of the image priority table
type rule struct {
	name string
	pick func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool)
}

// rules is evaluated top to bottom and the first match wins. The order is the
// behaviour; do not sort or regroup it.
var rules = []rule{
	{"explicit-tag", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		if o.tag == "" {
			return domain.ImageSelection{}, false
		}
		t := domain.ImagePrimary
		switch {
		case o.preferBackdrop:
			t = domain.ImageBackdrop
		case o.preferBanner:
			t = domain.ImageBanner
		case o.preferLogo:
			t = domain.ImageLogo
		case o.preferThumb:
			t = domain.ImageThumb
		}
		return own(t, o.tag), true
	}},
	{"person", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		if !it.IsPerson() {
			return domain.ImageSelection{}, false
		}
		return own(domain.ImagePrimary, it.PrimaryImageTag), true
	}},
	{"own-thumb", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		tag := it.OwnTag(domain.ImageThumb)
		return own(domain.ImageThumb, tag), o.preferThumb && tag != ""
	}},
	{"own-banner", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		tag := it.OwnTag(domain.ImageBanner)
		return own(domain.ImageBanner, tag), (o.preferBanner || o.shape == domain.ShapeBanner) && tag != ""
	}},
	{"own-logo", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		tag := it.OwnTag(domain.ImageLogo)
		return own(domain.ImageLogo, tag), o.preferLogo && tag != ""
	}},
	{"own-backdrop", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		tag := indexTag(it.BackdropImageTags, 0)
		return own(domain.ImageBackdrop, tag), o.preferBackdrop && tag != ""
	}},
	{"parent-logo", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		sel := inherited(domain.ImageLogo, it.ParentLogoImageTag, it.ParentLogoItemID)
		return sel, o.preferLogo && it.ParentLogoImageTag != "" && it.ParentLogoItemID != ""
	}},
	{"parent-backdrop", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		tag := indexTag(it.ParentBackdropImageTags, 0)
		sel := inherited(domain.ImageBackdrop, tag, it.ParentBackdropItemID)
		return sel, o.preferBackdrop && tag != "" && it.ParentBackdropItemID != ""
	}},
	{"series-thumb", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		sel := inherited(domain.ImageThumb, it.SeriesThumbImageTag, it.SeriesID)
		return sel, o.preferThumb && it.SeriesThumbImageTag != "" && o.inheritThumb
	}},
	{"parent-thumb", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		// Guarded on the owner id, the tag may still be empty
		sel := inherited(domain.ImageThumb, it.ParentThumbImageTag, it.ParentThumbItemID)
		return sel, o.preferThumb && it.ParentThumbItemID != "" && o.inheritThumb && it.MediaType != domain.MediaTypePhoto
	}},
	{"backdrop-as-thumb", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		return own(domain.ImageBackdrop, indexTag(it.BackdropImageTags, 0)), o.preferThumb && len(it.BackdropImageTags) > 0
	}},
	{"parent-backdrop-as-thumb", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		sel := inherited(domain.ImageBackdrop, indexTag(it.ParentBackdropImageTags, 0), it.ParentBackdropItemID)
		return sel, o.preferThumb && len(it.ParentBackdropImageTags) > 0 && o.inheritThumb && it.Type == domain.KindEpisode
	}},
	{"own-primary", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		tag := it.OwnTag(domain.ImagePrimary)
		if tag == "" || (it.Type == domain.KindEpisode && it.HasChildCount(0)) {
			return domain.ImageSelection{}, false
		}
		sel := own(domain.ImagePrimary, tag)
		sel.Height = heightFor(it, o.width)
		return sel, true
	}},
	{"series-primary", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		return inherited(domain.ImagePrimary, it.SeriesPrimaryImageTag, it.SeriesID), it.SeriesPrimaryImageTag != ""
	}},
	{"parent-primary", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		return inherited(domain.ImagePrimary, it.ParentPrimaryImageTag, it.ParentPrimaryImageItemID), it.ParentPrimaryImageTag != ""
	}},
	{"album-primary", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		if it.AlbumID == "" || it.AlbumPrimaryImageTag == "" {
			return domain.ImageSelection{}, false
		}
		sel := inherited(domain.ImagePrimary, it.AlbumPrimaryImageTag, it.AlbumID)
		sel.Height = heightFor(it, o.width)
		return sel, true
	}},
	{"season-thumb", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		tag := it.OwnTag(domain.ImageThumb)
		return own(domain.ImageThumb, tag), it.Type == domain.KindSeason && tag != ""
	}},
	{"own-backdrop-fallback", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		return own(domain.ImageBackdrop, indexTag(it.BackdropImageTags, 0)), len(it.BackdropImageTags) > 0
	}},
	{"own-thumb-fallback", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		tag := it.OwnTag(domain.ImageThumb)
		return own(domain.ImageThumb, tag), tag != ""
	}},
	{"series-thumb-fallback", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		sel := inherited(domain.ImageThumb, it.SeriesThumbImageTag, it.SeriesID)
		return sel, it.SeriesThumbImageTag != "" && o.inheritThumb
	}},
	{"parent-thumb-fallback", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		sel := inherited(domain.ImageThumb, it.ParentThumbImageTag, it.ParentThumbItemID)
		return sel, it.ParentThumbItemID != "" && o.inheritThumb
	}},
	{"parent-backdrop-fallback", func(it *domain.Item, o selectOptions) (domain.ImageSelection, bool) {
		sel := inherited(domain.ImageBackdrop, indexTag(it.ParentBackdropImageTags, 0), it.ParentBackdropItemID)
		return sel, len(it.ParentBackdropImageTags) > 0 && o.inheritThumb
	}},
}

// RuleNames lists the rule names in evaluation order
func RuleNames() []string {
	names := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		names = append(names, r.name)
	}
	return append(names, RuleNone)
}

// Select runs the priority rules against an item. The returned selection names the
// matched rule; its Type and Tag are empty when the matched rule had no tag to offer
// or when no rule matched at all.
func Select(item *domain.Item, opts Options) domain.ImageSelection {
	if item == nil {
		return domain.ImageSelection{Rule: RuleNone}
	}

	o := opts.selectOptions(item)
	for _, r := range rules {
		sel, ok := r.pick(item, o)
		if !ok {
			continue
		}
		sel.Rule = r.name
		if sel.ItemID == "" {
			sel.ItemID = item.ID
		}
		if sel.Tag == "" {
			sel.Type = ""
		}
		return sel
	}

	return domain.ImageSelection{ItemID: item.ID, Rule: RuleNone}
}

func own(t domain.ImageType, tag string) domain.ImageSelection {
	return domain.ImageSelection{Type: t, Tag: tag}
}

func inherited(t domain.ImageType, tag, ownerID string) domain.ImageSelection {
	return domain.ImageSelection{Type: t, Tag: tag, ItemID: ownerID}
}

// heightFor derives the display height from the primary image aspect ratio
func heightFor(it *domain.Item, width int) int {
	if width <= 0 || it.PrimaryImageAspectRatio <= 0 {
		return 0
	}
	return int(math.Round(float64(width) / it.PrimaryImageAspectRatio))
}
