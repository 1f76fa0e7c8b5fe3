package envtmpl

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/talss89/envtmpl/pkg/batch"
	"github.com/talss89/envtmpl/pkg/config"
	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/funcs"
	"github.com/talss89/envtmpl/pkg/logging"
	"github.com/talss89/envtmpl/pkg/paths"
	"github.com/talss89/envtmpl/pkg/render"
	"github.com/talss89/envtmpl/pkg/renderctx"
	"github.com/talss89/envtmpl/pkg/targets"
	"github.com/talss89/envtmpl/pkg/ui"
	"github.com/talss89/envtmpl/pkg/ui/display"
)

func (a *app) outputRenderer(w io.Writer) (ui.Renderer, error) {
	format := ui.FormatAuto
	if a.cfg != nil {
		f, err := ui.ParseFormat(a.cfg.Output.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	return ui.NewRenderer(format, w)
}

// runRender renders the configured targets and reports each file.
func (a *app) runRender(cmd *cobra.Command) error {
	cfg := a.cfg
	if len(cfg.Render.Targets) == 0 {
		return errors.Newf(errors.ErrInvalidInput, MsgNoTargetsFormat, cmd.Root().Name())
	}

	out, err := a.outputRenderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	service := render.Service{
		Engine: render.NewTextEngine(
			render.WithDelims(cfg.Render.LeftDelim, cfg.Render.RightDelim),
			render.WithMissingKey(cfg.Render.MissingKey),
		),
		Context: a.context,
		Hook:    render.LogHook(logging.GetLogger("render")),
	}

	driver := batch.Driver{
		FS:       a.fs,
		Resolver: targets.Resolver{FS: a.fs, Overwrite: cfg.Render.Overwrite},
		Renderer: service,
		Reporter: batch.ReporterFunc(func(e batch.Event) {
			_ = out.RenderProgress(display.Progress{
				Target: e.Spec.Raw,
				Input:  e.Pair.Input,
				Output: e.Pair.Output,
				Bytes:  e.Bytes,
				DryRun: e.DryRun,
			})
		}),
		DryRun: cfg.Render.DryRun,
	}

	summary, err := driver.Run(cmd.Context(), cfg.Render.Targets)
	if err != nil {
		return err
	}
	return out.RenderSummary(display.Summary{
		Targets: summary.Specs,
		Files:   summary.Files,
		DryRun:  cfg.Render.DryRun,
	})
}

// runFuncs lists the catalog in registration order.
func (a *app) runFuncs(cmd *cobra.Command) error {
	out, err := a.outputRenderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	catalog := funcs.Catalog()
	entries := make([]display.FuncEntry, 0, len(catalog))
	for _, f := range catalog {
		entries = append(entries, display.FuncEntry{Name: f.Name, Arity: f.Usage(), Summary: f.Summary})
	}
	return out.RenderFuncs(entries)
}

// runContext prints a freshly built context.
func (a *app) runContext(cmd *cobra.Command, format string) error {
	data, err := marshalContext(a.context.Build(), format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func marshalContext(c renderctx.Context, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(c)
	case "toml":
		return toml.Marshal(c)
	case "json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown context format %q: expected yaml, toml or json", format).
			WithDetail("format", format)
	}
}

// runConfigInit writes the commented defaults to path, or to the user
// configuration file when path is empty.
func (a *app) runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if path == "" {
		path = paths.New().UserConfigPath()
	} else {
		path = paths.ExpandHome(path)
	}

	if err := config.WriteConfigFile(a.fs, path, force); err != nil {
		return err
	}

	out, err := a.outputRenderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return out.RenderMessage(fmt.Sprintf(MsgConfigWritten, path))
}

// ReportError prints err for the operator, with its details, on w in the
// given format.
func ReportError(w io.Writer, err error, format ui.Format) {
	r, rerr := ui.NewRenderer(format, w)
	if rerr != nil {
		r, _ = ui.NewRenderer(ui.FormatText, w)
	}
	_ = r.RenderError(err)
}

// errorFormat is the format errors are reported in: the configured one when
// the configuration loaded, else whatever --output-format says.
func (a *app) errorFormat(cmd *cobra.Command) ui.Format {
	raw := ""
	if a.cfg != nil {
		raw = a.cfg.Output.Format
	} else if f := cmd.PersistentFlags().Lookup("output-format"); f != nil {
		raw = f.Value.String()
	}
	format, err := ui.ParseFormat(raw)
	if err != nil {
		return ui.FormatAuto
	}
	return format
}
