// Package assets resolves image references into bytes ready for embedding in a PDF.
package assets

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/docforge/internal/fetch"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Default loader limits.
const (
	DefaultFetchTimeout  = fetch.DefaultTimeout
	DefaultMaxConcurrent = 4
	DefaultMaxBytes      = fetch.DefaultMaxBytes
)

// Fetcher retrieves the bytes behind a remote image URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches over HTTP with a fresh client per call.
type HTTPFetcher struct {
	MaxBytes int64
}

// Fetch implements Fetcher.
func (f HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	opts := fetch.DefaultOptions()
	if f.MaxBytes > 0 {
		opts.MaxBytes = f.MaxBytes
	}
	// The context deadline bounds the request; the client timeout stays unset.
	opts.Timeout = 0
	result, err := fetch.URL(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

// LoaderOptions configures a Loader. Zero values select the defaults.
type LoaderOptions struct {
	Fetcher       Fetcher
	FetchTimeout  time.Duration
	MaxConcurrent int
	MaxBytes      int64
	Logger        *zap.Logger
}

// Loader resolves a batch of image references concurrently.
type Loader struct {
	fetcher       Fetcher
	timeout       time.Duration
	maxConcurrent int
	logger        *zap.Logger
}

// NewLoader creates a Loader, filling unset options with defaults.
func NewLoader(opts LoaderOptions) *Loader {
	l := &Loader{
		fetcher:       opts.Fetcher,
		timeout:       opts.FetchTimeout,
		maxConcurrent: opts.MaxConcurrent,
		logger:        opts.Logger,
	}
	if l.fetcher == nil {
		l.fetcher = HTTPFetcher{MaxBytes: opts.MaxBytes}
	}
	if l.timeout <= 0 {
		l.timeout = DefaultFetchTimeout
	}
	if l.maxConcurrent <= 0 {
		l.maxConcurrent = DefaultMaxConcurrent
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	return l
}

// Request asks for one image sized to a pixel box.
type Request struct {
	Ref    string
	Width  int
	Height int
	Fit    Fit
}

// Result is the outcome of one Request. Exactly one of Image and Err is set.
type Result struct {
	Image *Image
	Err   error
}

// LoadAll resolves every request and returns results in request order. Failures are
// reported per result and logged at warn; they never fail the batch. Cancellation of
// ctx is not propagated: once started, every fetch runs until it finishes or its own
// timeout expires.
func (l *Loader) LoadAll(ctx context.Context, reqs []Request) []Result {
	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results
	}

	base := context.WithoutCancel(ctx)
	g := new(errgroup.Group)
	g.SetLimit(l.maxConcurrent)

	for i, req := range reqs {
		g.Go(func() error {
			img, err := l.load(base, req)
			if err != nil {
				l.logger.Warn("image unavailable, using placeholder",
					zap.String("ref", abbreviate(req.Ref)),
					zap.Error(err))
				results[i] = Result{Err: err}
				return nil
			}
			results[i] = Result{Image: img}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Load resolves a single request.
func (l *Loader) Load(ctx context.Context, req Request) (*Image, error) {
	return l.load(context.WithoutCancel(ctx), req)
}

func (l *Loader) load(ctx context.Context, req Request) (*Image, error) {
	ref := strings.TrimSpace(req.Ref)
	if ref == "" {
		return nil, &Error{Ref: "(empty)", Message: "no image reference"}
	}

	var data []byte
	if isDataURI(ref) {
		uri, err := parseDataURI(ref)
		if err != nil {
			return nil, err
		}
		data = uri.Data
	} else {
		fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()
		body, err := l.fetcher.Fetch(fetchCtx, ref)
		if err != nil {
			return nil, &Error{Ref: abbreviate(ref), Message: "fetch failed", Cause: err}
		}
		data = body
	}

	img, err := prepare(data, req.Width, req.Height, req.Fit)
	if err != nil {
		return nil, &Error{Ref: abbreviate(ref), Message: "decode failed", Cause: err}
	}
	return img, nil
}
