package features

import (
	"strings"

	"github.com/mssola/useragent"
)

// tvTokens are user agent fragments reported by smart TV browsers
var tvTokens = []string{
	"tizen", "web0s", "webos", "smart-tv", "smarttv", "netcast", "hbbtv",
	"roku", "crkey", "aft", "googletv", "android tv", "appletv",
}

// Browser is a parsed user agent
type Browser struct {
	Name     string
	Version  string
	Platform string
	OS       string
	Mobile   bool
	Bot      bool

	raw string // lowercased user agent
}

// ParseBrowser classifies a user agent string
func ParseBrowser(userAgent string) Browser {
	ua := useragent.New(userAgent)
	name, version := ua.Browser()
	return Browser{
		Name:     name,
		Version:  version,
		Platform: ua.Platform(),
		OS:       ua.OS(),
		Mobile:   ua.Mobile(),
		Bot:      ua.Bot(),
		raw:      strings.ToLower(userAgent),
	}
}

func (b Browser) has(tokens ...string) bool {
	for _, t := range tokens {
		if strings.Contains(b.raw, t) {
			return true
		}
	}
	return false
}

// IsTV reports a smart TV or TV stick browser
func (b Browser) IsTV() bool {
	for _, t := range tvTokens {
		// "aft" is the Fire TV model prefix; match it as a token only
		if t == "aft" {
			if b.has("; aft") {
				return true
			}
			continue
		}
		if b.has(t) {
			return true
		}
	}
	return false
}

// IsApple reports Apple hardware
func (b Browser) IsApple() bool {
	return b.has("macintosh", "iphone", "ipad", "ipod")
}

// IsEdge reports both the legacy EdgeHTML and the Chromium based Edge
func (b Browser) IsEdge() bool {
	return b.Name == "Edge" || b.has("edge/", "edg/", "edga/", "edgios/")
}

func (b Browser) isOpera() bool {
	return b.Name == "Opera" || b.has("opr/", "opera")
}

// IsChrome reports Google Chrome, excluding other Chromium browsers that
// also carry the Chrome token
func (b Browser) IsChrome() bool {
	if b.IsEdge() || b.isOpera() || b.has("samsungbrowser", "yabrowser") {
		return false
	}
	return b.has("chrome/", "crios/")
}

// IsChromiumBased reports a browser built on Blink. Legacy Edge carries the
// Chrome token as well, so it is excluded explicitly.
func (b Browser) IsChromiumBased() bool {
	if b.has("edge/") {
		return false
	}
	return b.has("chrome/", "chromium/", "edg/", "crios/")
}
