// Package batch renders a list of INPUT:OUTPUT targets to disk.
//
// Targets run in the order given and files within a directory target run in
// path order. The first error stops the run; outputs already written stay
// where they are.
package batch

import (
	"context"
	"path/filepath"

	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/logging"
	"github.com/talss89/envtmpl/pkg/targets"
	"github.com/talss89/envtmpl/pkg/types"
)

// Renderer produces output text for a named template.
type Renderer interface {
	Render(name, text string) (string, error)
}

// Event describes one rendered file.
type Event struct {
	Spec   targets.Spec
	Pair   targets.FilePair
	Bytes  int
	DryRun bool
}

// Reporter is told about every file as soon as it is done.
type Reporter interface {
	FileRendered(Event)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(Event)

func (f ReporterFunc) FileRendered(e Event) { f(e) }

// Summary counts completed work.
type Summary struct {
	Specs int
	Files int
}

// Driver runs targets end to end.
type Driver struct {
	FS       types.FS
	Resolver targets.Resolver
	Renderer Renderer
	Reporter Reporter
	DryRun   bool
}

// Run parses every target before touching the filesystem, then processes
// them one by one. ctx is checked before each target and each file.
func (d Driver) Run(ctx context.Context, raws []string) (Summary, error) {
	logger := logging.GetLogger("batch")
	var summary Summary

	if len(raws) == 0 {
		return summary, errors.New(errors.ErrInvalidInput, "no targets given")
	}
	specs, err := targets.ParseSpecs(raws)
	if err != nil {
		return summary, err
	}

	done := logging.LogOperationStart(logger, "render targets")
	defer done()

	for _, spec := range specs {
		if err := checkContext(ctx); err != nil {
			return summary, err
		}

		targetLog := logging.WithFields(map[string]interface{}{"component": "batch", "target": spec.Raw})
		targetLog.Debug().Msg("Validating target")
		if err := d.Resolver.Validate(spec); err != nil {
			return summary, err
		}

		isDir, err := d.Resolver.IsDir(spec)
		if err != nil {
			return summary, err
		}
		if isDir && !d.DryRun {
			if err := d.FS.MkdirAll(spec.Output, types.DirPerm); err != nil {
				return summary, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", spec.Output).
					WithDetail("target", spec.Raw).
					WithDetail("output", spec.Output)
			}
		}

		pairs, err := d.Resolver.Expand(spec)
		if err != nil {
			return summary, err
		}
		targetLog.Debug().Int("files", len(pairs)).Msg("Expanded target")

		for _, pair := range pairs {
			if err := checkContext(ctx); err != nil {
				return summary, err
			}
			n, err := d.renderPair(pair)
			if err != nil {
				return summary, err
			}
			summary.Files++
			if d.Reporter != nil {
				d.Reporter.FileRendered(Event{Spec: spec, Pair: pair, Bytes: n, DryRun: d.DryRun})
			}
		}
		summary.Specs++
	}

	logger.Info().Int("targets", summary.Specs).Int("files", summary.Files).Bool("dryRun", d.DryRun).Msg("Render complete")
	return summary, nil
}

func (d Driver) renderPair(pair targets.FilePair) (int, error) {
	details := map[string]interface{}{"input": pair.Input, "output": pair.Output}

	data, err := d.FS.ReadFile(pair.Input)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", pair.Input).WithDetails(details)
	}

	out, err := d.Renderer.Render(pair.Input, string(data))
	if err != nil {
		if envErr, ok := err.(*errors.EnvtmplError); ok {
			return 0, envErr.WithDetails(details)
		}
		return 0, errors.Wrapf(err, errors.ErrTemplateExec, "failed to render %s", pair.Input).WithDetails(details)
	}

	if d.DryRun {
		return len(out), nil
	}

	if err := d.FS.MkdirAll(filepath.Dir(pair.Output), types.DirPerm); err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", pair.Output).WithDetails(details)
	}
	if err := d.FS.WriteFile(pair.Output, []byte(out), types.FilePerm); err != nil {
		return 0, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", pair.Output).WithDetails(details)
	}
	return len(out), nil
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCancelled, "render cancelled")
	}
	return nil
}
