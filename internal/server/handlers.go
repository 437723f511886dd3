package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mmcdole/kinoart/internal/artwork"
	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/features"
	"github.com/mmcdole/kinoart/internal/placeholder"
)

// Placeholder size limits. A request is checked against both the decoded size
// and the upscaled output size before anything is allocated.
const (
	maxPlaceholderScale  = 32
	maxPlaceholderSize   = placeholder.MaxSize
	maxPlaceholderOutput = placeholder.MaxOutputSize
)

// errBadRequest marks malformed query parameters
var errBadRequest = errors.New("bad request")

// ImageInfoResponse is the body of the image endpoints
type ImageInfoResponse struct {
	URL      string `json:"url"`
	Tag      string `json:"tag"`
	Blurhash string `json:"blurhash"`
	Rule     string `json:"rule,omitempty"`
	Type     string `json:"type,omitempty"`
	ItemID   string `json:"itemId,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleImageInfo(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	info, sel, err := s.svc.ImageInfo(r.Context(), mux.Vars(r)["id"], opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ImageInfoResponse{
		URL:      info.URL,
		Tag:      info.Tag,
		Blurhash: info.Blurhash,
		Rule:     sel.Rule,
		Type:     string(sel.Type),
		ItemID:   sel.ItemID,
	})
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var (
		opts artwork.LogoOptions
		err  error
	)
	if opts.Quality, err = intParam(q, "quality"); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Width, err = intParam(q, "width"); err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.Ratio, err = floatParam(q, "ratio"); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Tag = q.Get("tag")

	info, err := s.svc.Logo(r.Context(), mux.Vars(r)["id"], opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ImageInfoResponse{URL: info.URL, Tag: info.Tag, Blurhash: info.Blurhash})
}

func (s *Server) handlePlaceholder(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := placeholder.Request{Hash: q.Get("hash")}
	if req.Hash == "" {
		s.writeError(w, r, fmt.Errorf("%w: hash is required", errBadRequest))
		return
	}

	var err error
	if req.Width, err = intParam(q, "width"); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Height, err = intParam(q, "height"); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Punch, err = intParam(q, "punch"); err != nil {
		s.writeError(w, r, err)
		return
	}
	scale, err := intParam(q, "scale")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if scale <= 0 {
		scale = 1
	}
	if scale > maxPlaceholderScale {
		s.writeError(w, r, fmt.Errorf("%w: scale must be at most %d", errBadRequest, maxPlaceholderScale))
		return
	}
	if req.Width > maxPlaceholderSize || req.Height > maxPlaceholderSize {
		s.writeError(w, r, fmt.Errorf("%w: width and height must be at most %d", errBadRequest, maxPlaceholderSize))
		return
	}
	width, height := req.Width, req.Height
	if width <= 0 {
		width = placeholder.DefaultWidth
	}
	if height <= 0 {
		height = placeholder.DefaultHeight
	}
	if width*scale > maxPlaceholderOutput || height*scale > maxPlaceholderOutput {
		s.writeError(w, r, fmt.Errorf("%w: output must be at most %dx%d", errBadRequest, maxPlaceholderOutput, maxPlaceholderOutput))
		return
	}

	px, err := s.decoder.Decode(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := placeholder.EncodePNG(&buf, px, px.Width*scale, px.Height*scale); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	// A hash always decodes to the same image
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	env := features.Environment{UserAgent: r.UserAgent()}
	if ua := q.Get("userAgent"); ua != "" {
		env.UserAgent = ua
	}

	hints := []struct {
		name string
		dest *bool
	}{
		{"clientSide", &env.ClientSide},
		{"webkitPresentationMode", &env.WebkitPresentationMode},
		{"pictureInPictureEnabled", &env.PictureInPictureEnabled},
		{"playbackRate", &env.PlaybackRate},
		{"fullscreen", &env.FullscreenAPI},
	}
	for _, h := range hints {
		v, err := boolParam(q, h.name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		*h.dest = v
	}

	writeJSON(w, http.StatusOK, features.Detect(env))
}

// parseOptions reads artwork options from query parameters. Absent
// parameters keep the zero value, which the resolver treats as its default.
func parseOptions(q url.Values) (artwork.Options, error) {
	var opts artwork.Options

	if raw := q.Get("shape"); raw != "" {
		opts.Shape = artwork.ParseShape(raw)
		if opts.Shape == "" {
			return opts, fmt.Errorf("%w: unknown shape %q", errBadRequest, raw)
		}
	}

	flags := []struct {
		name string
		dest *bool
	}{
		{"preferThumb", &opts.PreferThumb},
		{"preferBanner", &opts.PreferBanner},
		{"preferLogo", &opts.PreferLogo},
		{"preferBackdrop", &opts.PreferBackdrop},
	}
	for _, f := range flags {
		v, err := boolParam(q, f.name)
		if err != nil {
			return opts, err
		}
		*f.dest = v
	}

	if q.Has("inheritThumb") {
		inherit, err := boolParam(q, "inheritThumb")
		if err != nil {
			return opts, err
		}
		opts.SkipInheritedThumb = !inherit
	}

	var err error
	if opts.Quality, err = intParam(q, "quality"); err != nil {
		return opts, err
	}
	if opts.Width, err = intParam(q, "width"); err != nil {
		return opts, err
	}
	if opts.Ratio, err = floatParam(q, "ratio"); err != nil {
		return opts, err
	}
	opts.Tag = q.Get("tag")

	return opts, nil
}

func boolParam(q url.Values, name string) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", errBadRequest, name)
	}
	return v, nil
}

func intParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", errBadRequest, name)
	}
	return v, nil
}

func floatParam(q url.Values, name string) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative number", errBadRequest, name)
	}
	return v, nil
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, placeholder.ErrTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidHash):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAuthFailed):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrServerOffline):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
