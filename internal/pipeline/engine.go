// Package pipeline provides the high-level orchestration for the document generation process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/docforge/internal/assets"
	"github.com/jonathan/docforge/internal/catalog"
	"github.com/jonathan/docforge/internal/compose"
	"github.com/jonathan/docforge/internal/dispatch"
	"github.com/jonathan/docforge/internal/errs"
	"github.com/jonathan/docforge/internal/rendering"
	"github.com/jonathan/docforge/internal/types"
)

// ProgressEvent reports one stage transition of a generation call
type ProgressEvent struct {
	RequestID string             `json:"request_id"`
	Kind      types.DocumentKind `json:"kind"`
	From      types.Stage        `json:"from"`
	To        types.Stage        `json:"to"`
	Err       error              `json:"-"`
}

// ProgressCallback is called on every stage transition. It runs on the
// generating goroutine and must not block.
type ProgressCallback func(event ProgressEvent)

// Options holds the dependencies of an Engine. Zero values get defaults.
type Options struct {
	// Catalog supplies templates, themes and the default agency. Defaults to the embedded catalog.
	Catalog *catalog.Catalog
	// Loader resolves image references. Defaults to an HTTP-backed loader.
	Loader *assets.Loader
	// Clock returns the request date. Defaults to time.Now.
	Clock func() time.Time
	Logger *zap.Logger
	// DefaultThemeID is used when a request names no theme. Defaults to the catalog's default.
	DefaultThemeID string
	// Agency replaces the catalog's agency profile for requests that carry none.
	Agency     *types.AgencyProfile
	OnProgress ProgressCallback
}

// Engine turns document requests into PDF bytes. It holds only read-only
// state, so one Engine may serve concurrent calls.
type Engine struct {
	catalog    *catalog.Catalog
	renderer   *rendering.Renderer
	clock      func() time.Time
	logger     *zap.Logger
	themeID    string
	agency     types.AgencyProfile
	onProgress ProgressCallback
}

// New builds an Engine from opts.
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cat := opts.Catalog
	if cat == nil {
		var err error
		cat, err = catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load default catalog: %w", err)
		}
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	themeID := strings.TrimSpace(opts.DefaultThemeID)
	if themeID == "" {
		themeID = cat.DefaultThemeID()
	} else if !cat.HasTheme(themeID) {
		return nil, fmt.Errorf("default theme %q is not in the catalog", themeID)
	}

	agency := cat.Agency()
	if opts.Agency != nil {
		agency = *opts.Agency
	}

	return &Engine{
		catalog:    cat,
		renderer:   rendering.New(opts.Loader, logger),
		clock:      clock,
		logger:     logger,
		themeID:    themeID,
		agency:     agency,
		onProgress: opts.OnProgress,
	}, nil
}

// Catalog returns the catalog the engine reads from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// DefaultThemeID returns the theme used for requests that name none.
func (e *Engine) DefaultThemeID() string {
	return e.themeID
}

// Generate classifies payload and produces its document.
func (e *Engine) Generate(ctx context.Context, payload []byte) (*types.GeneratedDocument, error) {
	run := e.newRun()
	run.advance(types.StageValidatingInput, nil)

	req, err := dispatch.Classify(payload)
	if err != nil {
		return nil, run.fail(err)
	}
	return e.generate(ctx, run, req)
}

// GenerateRequest produces the document for an already classified request.
func (e *Engine) GenerateRequest(ctx context.Context, req *types.DocumentRequest) (*types.GeneratedDocument, error) {
	run := e.newRun()
	run.advance(types.StageValidatingInput, nil)

	if req == nil {
		return nil, run.fail(&errs.UsageError{Message: "document request is nil"})
	}
	if err := dispatch.Check(req); err != nil {
		return nil, run.fail(err)
	}
	return e.generate(ctx, run, req)
}

// Compose classifies payload and returns its block sequence without rendering.
// It runs the same validation as Generate.
func (e *Engine) Compose(payload []byte) (*types.DocumentRequest, []types.RenderedBlock, error) {
	run := e.newRun()
	run.advance(types.StageValidatingInput, nil)

	req, err := dispatch.Classify(payload)
	if err != nil {
		return nil, nil, run.fail(err)
	}
	run.kind = req.Kind
	blocks, _, err := e.compose(run, req)
	if err != nil {
		return req, nil, run.fail(err)
	}
	run.advance(types.StageComposingBlocks, nil)
	return req, blocks, nil
}

// generate runs the remaining stages once req has passed shape validation.
// Invoice and contract composition still validate field contents, so their
// failures are reported from ValidatingInput.
func (e *Engine) generate(ctx context.Context, run *generation, req *types.DocumentRequest) (*types.GeneratedDocument, error) {
	run.kind = req.Kind
	run.logger = run.logger.With(zap.Stringer("kind", req.Kind))
	now := e.clock()

	blocks, meta, err := e.compose(run, req)
	if err != nil {
		return nil, run.fail(err)
	}
	run.advance(types.StageComposingBlocks, nil)
	run.logger.Debug("blocks composed", zap.Int("blocks", len(blocks)))

	agency := e.agency
	if req.Agency != nil {
		agency = *req.Agency
	}
	theme := e.theme(run, req.ThemeID)
	meta.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	run.advance(types.StagePaginating, nil)
	out, err := e.renderer.Render(ctx, blocks, theme, agency, meta)
	run.advance(types.StageEncoding, nil)
	if err != nil {
		return nil, run.fail(&errs.EncodingError{Message: "failed to render document", Cause: err})
	}

	doc := &types.GeneratedDocument{
		Bytes:     out.Bytes,
		Filename:  dispatch.Filename(req, now),
		MediaType: types.MediaTypePDF,
		Length:    len(out.Bytes),
		Pages:     out.Pages,
		Kind:      req.Kind,
	}
	run.advance(types.StageDone, nil)
	run.logger.Info("document generated",
		zap.String("filename", doc.Filename),
		zap.Int("pages", doc.Pages),
		zap.Int("bytes", doc.Length))
	return doc, nil
}

func (e *Engine) compose(run *generation, req *types.DocumentRequest) ([]types.RenderedBlock, rendering.Meta, error) {
	meta := rendering.Meta{Kind: req.Kind}

	switch req.Kind {
	case types.KindProposal:
		intake := req.Proposal
		tmpl, found := e.catalog.LookupOrDefault(types.KindProposal, intake.Industry)
		if !found {
			run.logger.Debug("no template for industry, using default",
				zap.String("industry", intake.Industry),
				zap.String("template", tmpl.ID))
		}
		agency := e.agency
		if req.Agency != nil {
			agency = *req.Agency
		}
		meta.Title = "Proposal for " + intake.BusinessName
		meta.Subject = tmpl.Name
		return compose.Proposal(intake, tmpl, agency, req.Overrides), meta, nil

	case types.KindContract:
		blocks, err := compose.Contract(req.Contract)
		if err != nil {
			return nil, meta, err
		}
		meta.Title = blocks[0].Title
		meta.Subject = "Contract"
		return blocks, meta, nil

	case types.KindInvoice:
		blocks, err := compose.Invoice(&req.Invoice.Invoice)
		if err != nil {
			return nil, meta, err
		}
		meta.Title = "Invoice"
		if n := strings.TrimSpace(req.Invoice.Invoice.InvoiceNumber); n != "" {
			meta.Title += " " + n
		}
		meta.Subject = "Invoice"
		return blocks, meta, nil

	default:
		return nil, meta, &errs.UsageError{Message: fmt.Sprintf("unsupported document kind %s", req.Kind)}
	}
}

// theme resolves the request's theme id; unknown ids fall back to the default theme.
func (e *Engine) theme(run *generation, id string) types.ThemeProfile {
	id = strings.TrimSpace(id)
	if id == "" {
		id = e.themeID
	}
	if !e.catalog.HasTheme(id) {
		run.logger.Debug("unknown theme, using default",
			zap.String("theme", id),
			zap.String("default", e.themeID))
		id = e.themeID
	}
	return e.catalog.Theme(id)
}

// generation tracks the stage machine of one call.
type generation struct {
	id         string
	kind       types.DocumentKind
	stage      types.Stage
	logger     *zap.Logger
	onProgress ProgressCallback
}

func (e *Engine) newRun() *generation {
	id := uuid.NewString()
	return &generation{
		id:         id,
		stage:      types.StageIdle,
		logger:     e.logger.With(zap.String("request_id", id)),
		onProgress: e.onProgress,
	}
}

func (r *generation) advance(to types.Stage, err error) {
	from := r.stage
	r.stage = to
	r.logger.Debug("stage transition",
		zap.Stringer("from", from),
		zap.Stringer("to", to))
	if r.onProgress != nil {
		r.onProgress(ProgressEvent{
			RequestID: r.id,
			Kind:      r.kind,
			From:      from,
			To:        to,
			Err:       err,
		})
	}
}

// fail moves the machine to Failed and returns err for the caller.
func (r *generation) fail(err error) error {
	if !r.stage.CanFail() {
		r.logger.Warn("failure outside a failing stage", zap.Stringer("stage", r.stage), zap.Error(err))
	}
	r.advance(types.StageFailed, err)

	var encErr *errs.EncodingError
	if errors.As(err, &encErr) {
		r.logger.Error("document generation failed", zap.Error(err))
	} else {
		r.logger.Info("document request rejected", zap.Error(err))
	}
	return err
}
