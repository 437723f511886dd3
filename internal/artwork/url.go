package artwork

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/kinoart/internal/domain"
)

// Query holds the sizing parameters of an image request
type Query struct {
	Quality int     // JPEG quality, 0 means DefaultQuality
	Width   int     // Display width, 0 means unbounded
	Height  int     // Display height, 0 means unbounded
	Ratio   float64 // Device pixel ratio, 0 means 1
}

// URLBuilder formats image request URLs against a server base URL
type URLBuilder struct {
	base string
}

// NewURLBuilder validates the server base URL
func NewURLBuilder(baseURL string) (*URLBuilder, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: scheme and host are required", baseURL)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return &URLBuilder{base: strings.TrimRight(u.String(), "/")}, nil
}

// BaseURL returns the normalized server base URL
func (b *URLBuilder) BaseURL() string {
	return b.base
}

// Build returns {base}/Items/{owner}/Images/{type}?imgTag=..&quality=..[&maxWidth=..][&maxHeight=..],
// or "" when the selection has no image. Width and height are scaled by the ratio and
// rounded to the nearest pixel.
func (b *URLBuilder) Build(sel domain.ImageSelection, q Query) string {
	if sel.IsZero() {
		return ""
	}

	quality := q.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}
	ratio := q.Ratio
	if ratio <= 0 {
		ratio = 1
	}

	var sb strings.Builder
	sb.WriteString(b.base)
	sb.WriteString("/Items/")
	sb.WriteString(url.PathEscape(sel.ItemID))
	sb.WriteString("/Images/")
	sb.WriteString(url.PathEscape(string(sel.Type)))

	// Parameter order is kept stable so URLs double as cache keys
	sb.WriteString("?imgTag=")
	sb.WriteString(url.QueryEscape(sel.Tag))
	sb.WriteString("&quality=")
	sb.WriteString(strconv.Itoa(quality))
	if q.Width > 0 {
		sb.WriteString("&maxWidth=")
		sb.WriteString(strconv.Itoa(scale(q.Width, ratio)))
	}
	if q.Height > 0 {
		sb.WriteString("&maxHeight=")
		sb.WriteString(strconv.Itoa(scale(q.Height, ratio)))
	}

	return sb.String()
}

func scale(v int, ratio float64) int {
	return int(math.Round(float64(v) * ratio))
}
