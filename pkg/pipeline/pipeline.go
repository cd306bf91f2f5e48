// Package pipeline turns a directory of record documents into DOT documents.
//
// A run has two phases. The load phase reads every input, builds its
// component or group, and registers each loaded component by identity.
// The emit phase then renders every loaded document, so a group can refer
// to components declared in any other input regardless of file order.
//
// Each input is independent: an input that cannot be read, decoded or
// loaded is reported as failed and produces no output, and the remaining
// inputs are still processed. Records of an unrecognised kind are skipped.
//
// # Usage
//
//	runner := pipeline.NewRunner(set, logger)
//	report, err := runner.Run(ctx, pipeline.Options{
//	    SrcDir: "records",
//	    OutDir: "out",
//	})
//	if err != nil {
//	    return err
//	}
//	if report.Failed() > 0 {
//	    // some inputs produced no document
//	}
package pipeline

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/matzehuels/felipe/pkg/errors"
	"github.com/matzehuels/felipe/pkg/model"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI and library callers
// =============================================================================

const (
	// DefaultConfigPath is the styling configuration read when none is given.
	DefaultConfigPath = "./config.yaml"

	// DefaultSrcDir is the directory scanned for record documents.
	DefaultSrcDir = "./"

	// DefaultOutDir is the directory output documents are written to.
	DefaultOutDir = "./"

	// InputPattern matches record documents inside the source directory.
	InputPattern = "*.json"

	// OutputSuffix is appended to an input's base name to name its output.
	OutputSuffix = ".dot"
)

// Options configures a run.
type Options struct {
	// SrcDir is scanned (not recursively) for InputPattern.
	SrcDir string

	// OutDir receives one document per loaded input. It is created if
	// missing.
	OutDir string
}

// ValidateAndSetDefaults fills empty fields with their defaults and checks
// that SrcDir is a directory.
func (o *Options) ValidateAndSetDefaults() error {
	if o.SrcDir == "" {
		o.SrcDir = DefaultSrcDir
	}
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}

	fi, err := os.Stat(o.SrcDir)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "source directory")
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "source directory")
	}
	if !fi.IsDir() {
		return errors.New(errors.ErrCodeIO, "source %s is not a directory", o.SrcDir)
	}
	return nil
}

// Discover returns the record documents in dir, sorted by name.
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, InputPattern))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "discover inputs in %s", dir)
	}

	inputs := matches[:0]
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "discover inputs in %s", dir)
		}
		if fi.Mode().IsRegular() {
			inputs = append(inputs, m)
		}
	}
	slices.Sort(inputs)
	return inputs, nil
}

// OutputName returns the output file name for input: its base name with
// OutputSuffix appended, so "records/svc.json" becomes "svc.json.dot".
func OutputName(input string) string {
	return filepath.Base(input) + OutputSuffix
}

// Status is the result of processing one input.
type Status string

const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome describes what happened to one input.
type Outcome struct {
	Input string
	// Output is the written document; empty unless Status is StatusWritten.
	Output string
	// Kind is the record kind, empty when the input could not be decoded.
	Kind   model.Kind
	Status Status
	Err    error
}

// Report summarises a run. Outcomes are in input order.
type Report struct {
	RunID    string
	Outcomes []Outcome
	Duration time.Duration
}

// Written returns the number of documents written.
func (r *Report) Written() int { return r.count(StatusWritten) }

// Skipped returns the number of inputs of an unrecognised kind.
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// Failed returns the number of inputs that produced no document because
// of an error.
func (r *Report) Failed() int { return r.count(StatusFailed) }

func (r *Report) count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}
