package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/felipe/pkg/config"
	"github.com/matzehuels/felipe/pkg/dot"
	"github.com/matzehuels/felipe/pkg/errors"
	fio "github.com/matzehuels/felipe/pkg/io"
	"github.com/matzehuels/felipe/pkg/model"
	"github.com/matzehuels/felipe/pkg/observability"
)

// Runner executes batch runs against one resolved configuration.
//
// The Runner keeps no state between runs: every run builds its own
// registry, so one Runner can be reused for several directories.
type Runner struct {
	Set    *config.Set
	Logger *log.Logger

	// Validate parses every document with Graphviz before it is written.
	Validate bool
}

// NewRunner creates a runner for set. If logger is nil, log.Default() is used.
func NewRunner(set *config.Set, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Set: set, Logger: logger}
}

// LoadConfig loads and resolves the configuration at path, reporting the
// result to the configuration hooks. Any error is a configuration error
// and must abort the run.
func LoadConfig(ctx context.Context, path string, logger *log.Logger) (*config.Set, error) {
	start := time.Now()
	set, err := config.Load(path)
	if err != nil {
		observability.Config().OnConfigLoad(ctx, path, 0, 0, time.Since(start), err)
		return nil, err
	}

	nc, nr := len(set.ComponentNames()), len(set.RelationNames())
	observability.Config().OnConfigLoad(ctx, path, nc, nr, time.Since(start), nil)
	if logger != nil {
		logger.Debug("resolved configuration", "path", path, "components", nc, "relations", nr)
	}
	return set, nil
}

// loaded is an input that survived the load phase.
type loaded struct {
	index int
	doc   model.Document
}

// Run processes every input in opts.SrcDir.
//
// Per-input failures are recorded in the report and never stop the run.
// Run returns an error only when the run cannot start (missing source
// directory, unwritable output directory) or when ctx is cancelled; the
// report is non-nil in the latter case and covers the inputs seen so far.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	if r.Set == nil {
		return nil, errors.New(errors.ErrCodeInternal, "runner has no configuration")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	inputs, err := Discover(opts.SrcDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create output directory")
	}

	start := time.Now()
	report := &Report{
		RunID:    uuid.NewString(),
		Outcomes: make([]Outcome, len(inputs)),
	}
	base := r.Logger
	if base == nil {
		base = log.Default()
	}
	logger := base.With("run", report.RunID)
	hooks := observability.Batch()

	logger.Info("starting run", "inputs", len(inputs), "src", opts.SrcDir, "out", opts.OutDir)
	hooks.OnBatchStart(ctx, report.RunID, len(inputs))

	finish := func() {
		report.Duration = time.Since(start)
		hooks.OnBatchComplete(ctx, report.RunID,
			report.Written(), report.Skipped(), report.Failed(), report.Duration)
	}

	// Phase 1: load everything so groups can see every component.
	reg := model.NewRegistry()
	var docs []loaded
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			report.Outcomes = report.Outcomes[:i]
			finish()
			return report, err
		}
		report.Outcomes[i] = Outcome{Input: in}
		out := &report.Outcomes[i]

		doc, err := r.load(ctx, logger, in, out)
		switch {
		case err != nil:
			out.Status, out.Err = StatusFailed, err
			logger.Warn("load failed", "input", in, "err", err)
		case doc == nil:
			out.Status = StatusSkipped
			logger.Warn("skipping record of unknown kind", "input", in, "kind", out.Kind)
		default:
			if c, ok := doc.(*model.Component); ok {
				reg.Register(c)
			}
			docs = append(docs, loaded{index: i, doc: doc})
		}
	}
	reg.Freeze()
	logger.Debug("loaded inputs", "documents", len(docs), "components", reg.Len())

	// Phase 2: emit.
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			finish()
			return report, err
		}
		out := &report.Outcomes[d.index]
		path := filepath.Join(opts.OutDir, OutputName(out.Input))

		if err := r.emit(ctx, d.doc, reg, out.Input, path); err != nil {
			out.Status, out.Err = StatusFailed, err
			logger.Warn("emit failed", "input", out.Input, "err", err)
			continue
		}
		out.Status, out.Output = StatusWritten, path
		logger.Info("wrote document", "input", out.Input, "output", path)
	}

	finish()
	logger.Info("run complete",
		"written", report.Written(),
		"skipped", report.Skipped(),
		"failed", report.Failed(),
		"duration", report.Duration)
	return report, nil
}

// load reads and builds one input. A nil document with a nil error means
// the record kind is not recognised.
func (r *Runner) load(ctx context.Context, logger *log.Logger, input string, out *Outcome) (model.Document, error) {
	start := time.Now()
	rec, err := fio.ImportRecord(input)
	if err != nil {
		observability.Batch().OnLoad(ctx, input, "", time.Since(start), err)
		return nil, err
	}
	out.Kind = rec.Kind

	doc, err := model.Load(r.Set, rec)
	observability.Batch().OnLoad(ctx, input, string(rec.Kind), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		logger.Debug("loaded record", "input", input, "kind", rec.Kind, "duration", time.Since(start))
	}
	return doc, nil
}

// emit renders doc completely, optionally validates it, and only then
// writes it to path.
func (r *Runner) emit(ctx context.Context, doc model.Document, reg *model.Registry, input, path string) error {
	start := time.Now()
	src, err := dot.Document(r.Set, doc, reg)
	if err == nil && r.Validate {
		err = dot.Validate(ctx, src)
	}
	if err == nil {
		err = writeFile(path, []byte(src))
	}
	observability.Batch().OnEmit(ctx, input, path, len(src), time.Since(start), err)
	return err
}

// writeFile writes data next to path and renames it into place, so path
// either holds the complete document or is left untouched.
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
