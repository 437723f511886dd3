// Package placeholder decodes blurhash strings into small pixel buffers.
//
// Decoding runs on a fixed pool of workers so that callers rendering many
// cards at once never block on CPU work of their own. A request names the hash,
// the output size and the punch (contrast) factor; the result is an RGBA buffer
// of width*height*4 bytes.
package placeholder

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/buckket/go-blurhash"

	"github.com/mmcdole/kinoart/internal/domain"
	"github.com/mmcdole/kinoart/internal/metrics"
)

// Defaults applied to zero or negative request fields
const (
	DefaultWidth  = 32
	DefaultHeight = 32
	DefaultPunch  = 1
)

// MaxSize bounds the decoded width and height. A blurhash carries at most 9x9
// components, so larger decodes only cost memory; EncodePNG upscales instead.
const MaxSize = 128

// MaxOutputSize bounds the width and height of an encoded PNG
const MaxOutputSize = 4096

// ErrTooLarge is returned for requests beyond MaxSize or MaxOutputSize
var ErrTooLarge = errors.New("placeholder too large")

// ErrDecoderClosed is returned by Decode after Close
var ErrDecoderClosed = errors.New("placeholder decoder closed")

// InvalidHashError reports a hash the decoder could not parse
type InvalidHashError struct {
	Hash string
	Err  error
}

func (e *InvalidHashError) Error() string {
	return fmt.Sprintf("blurhash %s is not valid", e.Hash)
}

func (e *InvalidHashError) Unwrap() error { return e.Err }

// Is lets errors.Is match domain.ErrInvalidHash
func (e *InvalidHashError) Is(target error) bool {
	return target == domain.ErrInvalidHash
}

// Request describes one decode
type Request struct {
	Hash   string
	Width  int
	Height int
	Punch  int
}

func (r Request) withDefaults() Request {
	if r.Width <= 0 {
		r.Width = DefaultWidth
	}
	if r.Height <= 0 {
		r.Height = DefaultHeight
	}
	if r.Punch <= 0 {
		r.Punch = DefaultPunch
	}
	return r
}

func (r Request) validate() error {
	if r.Width > MaxSize || r.Height > MaxSize {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrTooLarge, r.Width, r.Height, MaxSize, MaxSize)
	}
	return nil
}

// Pixels is a decoded RGBA buffer
type Pixels struct {
	Width  int
	Height int
	Data   []uint8
}

// Image wraps the buffer as an image without copying it
func (p Pixels) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    p.Data,
		Stride: p.Width * 4,
		Rect:   image.Rect(0, 0, p.Width, p.Height),
	}
}

type job struct {
	req Request
	out chan result
}

type result struct {
	px  Pixels
	err error
}

// Decoder is a pool of blurhash decode workers
type Decoder struct {
	jobs    chan job
	quit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	workers int
	logger  *slog.Logger
}

// NewDecoder starts a decoder with the given number of workers. Zero or a
// negative count means one worker per available CPU.
func NewDecoder(workers int, logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		// GOMAXPROCS respects container CPU limits, NumCPU does not
		workers = runtime.GOMAXPROCS(0)
	}

	d := &Decoder{
		jobs:    make(chan job),
		quit:    make(chan struct{}),
		workers: workers,
		logger:  logger,
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work()
	}
	metrics.PlaceholderWorkers.Add(float64(workers))
	logger.Debug("placeholder decoder started", "workers", workers)
	return d
}

// Workers returns the pool size
func (d *Decoder) Workers() int {
	return d.workers
}

// Decode queues a request and waits for its pixels
func (d *Decoder) Decode(ctx context.Context, req Request) (Pixels, error) {
	if err := req.validate(); err != nil {
		return Pixels{}, err
	}
	out := make(chan result, 1)

	select {
	case d.jobs <- job{req: req, out: out}:
	case <-d.quit:
		return Pixels{}, ErrDecoderClosed
	case <-ctx.Done():
		metrics.PlaceholderDecodesTotal.WithLabelValues("canceled").Inc()
		return Pixels{}, ctx.Err()
	}

	select {
	case res := <-out:
		return res.px, res.err
	case <-ctx.Done():
		metrics.PlaceholderDecodesTotal.WithLabelValues("canceled").Inc()
		return Pixels{}, ctx.Err()
	}
}

// Close stops the workers. Requests already taken by a worker complete.
func (d *Decoder) Close() {
	d.once.Do(func() {
		close(d.quit)
		d.wg.Wait()
		metrics.PlaceholderWorkers.Sub(float64(d.workers))
	})
}

func (d *Decoder) work() {
	defer d.wg.Done()
	for {
		select {
		case j := <-d.jobs:
			start := time.Now()
			px, err := DecodePixels(j.req)
			metrics.PlaceholderDecodeDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.PlaceholderDecodesTotal.WithLabelValues("invalid").Inc()
				d.logger.Debug("blurhash decode failed", "hash", j.req.Hash, "error", err)
			} else {
				metrics.PlaceholderDecodesTotal.WithLabelValues("ok").Inc()
			}
			j.out <- result{px: px, err: err}
		case <-d.quit:
			return
		}
	}
}

// DecodePixels decodes a request on the calling goroutine
func DecodePixels(req Request) (Pixels, error) {
	if err := req.validate(); err != nil {
		return Pixels{}, err
	}
	req = req.withDefaults()

	img, err := decodeHash(req)
	if err != nil {
		return Pixels{}, &InvalidHashError{Hash: req.Hash, Err: err}
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != req.Width*4 {
		nrgba = image.NewNRGBA(image.Rect(0, 0, req.Width, req.Height))
		draw.Draw(nrgba, nrgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}

	return Pixels{Width: req.Width, Height: req.Height, Data: nrgba.Pix}, nil
}

// decodeHash guards the decoder against malformed input it does not reject itself
func decodeHash(req Request) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode panicked: %v", r)
		}
	}()
	return blurhash.Decode(req.Hash, req.Width, req.Height, req.Punch)
}
