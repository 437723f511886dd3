package artwork

import (
	"strings"

	"github.com/mmcdole/kinoart/internal/domain"
)

// DesiredAspect returns the width/height ratio of a card shape
func DesiredAspect(shape domain.CardShape) float64 {
	switch shape {
	case domain.ShapePortrait:
		return 2.0 / 3.0
	case domain.ShapeThumb:
		return 16.0 / 9.0
	case domain.ShapeBanner:
		return 1000.0 / 185.0
	default:
		return 1
	}
}

// ShapeFromItemType returns the card shape items of a kind are displayed in
func ShapeFromItemType(kind domain.ItemKind) domain.CardShape {
	switch strings.ToLower(string(kind)) {
	case "audio", "folder", "musicalbum", "musicartist", "musicgenre", "photoalbum", "playlist", "video":
		return domain.ShapeSquare
	case "episode", "studio":
		return domain.ShapeThumb
	default:
		return domain.ShapePortrait
	}
}

// ParseShape accepts either the full shape name ("thumb-card") or its short form ("thumb").
// Unknown values return "".
func ParseShape(s string) domain.CardShape {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, shape := range []domain.CardShape{domain.ShapePortrait, domain.ShapeThumb, domain.ShapeSquare, domain.ShapeBanner} {
		if s == string(shape) || s+"-card" == string(shape) {
			return shape
		}
	}
	return ""
}
