// Package features detects which playback features a client supports.
//
// The snapshot is derived from the client's user agent and, for capabilities
// only the client itself can probe, from hints the client reports. It is
// computed once per client and not refreshed.
package features

import (
	"log/slog"
	"sync"
)

// Snapshot is the set of supported playback features
type Snapshot struct {
	PictureInPicture bool `json:"pictureInPicture"`
	AirPlay          bool `json:"airPlay"`
	GoogleCast       bool `json:"googleCast"`
	PlaybackRate     bool `json:"playbackRate"`
	FullScreen       bool `json:"fullScreen"`
}

// Environment is what is known about the client. The capability hints are
// only trusted when ClientSide is set, i.e. when a real client probed them.
type Environment struct {
	UserAgent  string
	ClientSide bool

	WebkitPresentationMode  bool // non-standard Safari picture-in-picture
	PictureInPictureEnabled bool
	PlaybackRate            bool
	FullscreenAPI           bool
}

// Detect computes the snapshot for an environment
func Detect(env Environment) Snapshot {
	b := ParseBrowser(env.UserAgent)

	var s Snapshot
	if env.ClientSide {
		s.PictureInPicture = env.WebkitPresentationMode || env.PictureInPictureEnabled
		s.PlaybackRate = env.PlaybackRate
		// TVs don't support fullscreen
		s.FullScreen = !b.IsTV() && env.FullscreenAPI
	}
	s.AirPlay = b.IsApple()
	s.GoogleCast = b.IsChrome() || (b.IsEdge() && b.IsChromiumBased())
	return s
}

// Detector computes a snapshot on first use and returns it thereafter
type Detector struct {
	env      Environment
	once     sync.Once
	snapshot Snapshot
	logger   *slog.Logger
}

func NewDetector(env Environment, logger *slog.Logger) *Detector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Detector{env: env, logger: logger}
}

// Features returns the snapshot
func (d *Detector) Features() Snapshot {
	d.once.Do(func() {
		d.snapshot = Detect(d.env)
		d.logger.Debug("features detected", "features", d.snapshot)
	})
	return d.snapshot
}
