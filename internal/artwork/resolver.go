package artwork

import (
	"log/slog"

	"github.com/mmcdole/kinoart/internal/domain"
)

// DefaultQuality is the image quality requested when none is given
const DefaultQuality = 90

// Options are the display preferences for an item image. The zero value is the
// default: shape derived from the item type, thumbs inherited from ancestors,
// quality 90, ratio 1, no width and no explicit tag.
type Options struct {
	Shape              domain.CardShape
	PreferThumb        bool
	PreferBanner       bool
	PreferLogo         bool
	PreferBackdrop     bool
	SkipInheritedThumb bool // do not fall back to series/parent thumbs and backdrops
	Quality            int
	Width              int
	Ratio              float64
	Tag                string // explicit image tag, bypasses the priority rules
}

func (o Options) selectOptions(item *domain.Item) selectOptions {
	shape := o.Shape
	if shape == "" {
		shape = ShapeFromItemType(item.Type)
	}
	return selectOptions{
		shape:          shape,
		preferThumb:    o.PreferThumb,
		preferBanner:   o.PreferBanner,
		preferLogo:     o.PreferLogo,
		preferBackdrop: o.PreferBackdrop,
		inheritThumb:   !o.SkipInheritedThumb,
		width:          o.Width,
		tag:            o.Tag,
	}
}

// LogoOptions are the display preferences for an item logo
type LogoOptions struct {
	Quality int
	Width   int
	Ratio   float64
	Tag     string
}

// Resolver turns items into renderable image info against one server
type Resolver struct {
	urls   *URLBuilder
	logger *slog.Logger
}

// NewResolver creates a resolver for the server at baseURL
func NewResolver(baseURL string, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	urls, err := NewURLBuilder(baseURL)
	if err != nil {
		return nil, err
	}
	return &Resolver{urls: urls, logger: logger}, nil
}

// URLs returns the resolver's URL builder
func (r *Resolver) URLs() *URLBuilder {
	return r.urls
}

// ImageInfo selects the image to show for an item and returns its URL, tag and
// blurhash. An item without usable images yields an empty ImageURLInfo.
func (r *Resolver) ImageInfo(item *domain.Item, opts Options) domain.ImageURLInfo {
	info, _ := r.Explain(item, opts)
	return info
}

// Explain is ImageInfo that also returns the selection behind the result
func (r *Resolver) Explain(item *domain.Item, opts Options) (domain.ImageURLInfo, domain.ImageSelection) {
	sel := Select(item, opts)
	if item != nil {
		r.logger.Debug("image selected", "item", item.ID, "rule", sel.Rule, "type", sel.Type, "owner", sel.ItemID)
	}
	return r.info(item, sel, Query{
		Quality: opts.Quality,
		Width:   opts.Width,
		Height:  sel.Height,
		Ratio:   opts.Ratio,
	}), sel
}

// Logo resolves an item's logo: explicit tag, then the item's own logo, then the
// parent's logo. The height is never constrained.
func (r *Resolver) Logo(item *domain.Item, opts LogoOptions) domain.ImageURLInfo {
	if item == nil {
		return domain.ImageURLInfo{}
	}

	sel := domain.ImageSelection{ItemID: item.ID, Rule: RuleNone}
	switch {
	case opts.Tag != "":
		sel = domain.ImageSelection{Type: domain.ImageLogo, Tag: opts.Tag, ItemID: item.ID, Rule: "explicit-tag"}
	case item.OwnTag(domain.ImageLogo) != "":
		sel = domain.ImageSelection{Type: domain.ImageLogo, Tag: item.OwnTag(domain.ImageLogo), ItemID: item.ID, Rule: "own-logo"}
	case item.ParentLogoImageTag != "" && item.ParentLogoItemID != "":
		sel = domain.ImageSelection{Type: domain.ImageLogo, Tag: item.ParentLogoImageTag, ItemID: item.ParentLogoItemID, Rule: "parent-logo"}
	}

	return r.info(item, sel, Query{Quality: opts.Quality, Width: opts.Width, Ratio: opts.Ratio})
}

func (r *Resolver) info(item *domain.Item, sel domain.ImageSelection, q Query) domain.ImageURLInfo {
	if item == nil || sel.IsZero() {
		return domain.ImageURLInfo{}
	}
	return domain.ImageURLInfo{
		URL:      r.urls.Build(sel, q),
		Tag:      sel.Tag,
		Blurhash: item.ImageBlurHashes.Lookup(sel.Type, sel.Tag),
	}
}
