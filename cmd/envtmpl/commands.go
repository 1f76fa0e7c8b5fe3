package envtmpl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/talss89/envtmpl/internal/version"
	"github.com/talss89/envtmpl/pkg/cobrax/topics"
	"github.com/talss89/envtmpl/pkg/config"
	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/filesystem"
	"github.com/talss89/envtmpl/pkg/logging"
	"github.com/talss89/envtmpl/pkg/renderctx"
	"github.com/talss89/envtmpl/pkg/types"
)

// app is the state shared by every command of one root command.
type app struct {
	fs      types.FS
	context renderctx.Builder
	workDir string

	verbosity  int
	configFile string

	// cfg is set by the root pre-run for commands that need it
	cfg *config.Config
}

const annotationSkipConfig = "envtmpl/skip-config"

// Flags that map one to one onto configuration keys.
var flagKeys = []struct {
	flag string
	key  string
}{
	{"verbose", "logging.verbosity"},
	{"output-format", "output.format"},
	{"overwrite", "render.overwrite"},
	{"dry-run", "render.dry_run"},
	{"missing-key", "render.missing_key"},
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{fs: filesystem.NewOS()})
}

// Execute runs the command line in args and reports a failure on stderr in
// the output format the user asked for.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{fs: filesystem.NewOS()}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		ReportError(stderr, err, a.errorFormat(rootCmd))
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "envtmpl",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRenderExample,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.Render.Targets) == 0 {
				_ = cmd.Help()
				return errors.Newf(errors.ErrInvalidInput, MsgNoTargetsFormat, cmd.Root().Name())
			}
			return a.runRender(cmd)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().String("output-format", "", MsgFlagOutputFormat)
	addRenderFlags(rootCmd)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "CONFIGURATION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRenderCmd(a))
	rootCmd.AddCommand(newFuncsCmd(a))
	rootCmd.AddCommand(newContextCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newManCmd())

	tm, err := initTopics(rootCmd)
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	} else {
		rootCmd.AddCommand(newTopicsCmd(tm))
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// addRenderFlags registers the flags shared by the root and render commands.
func addRenderFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayP("target", "t", nil, MsgFlagTarget)
	flags.BoolP("overwrite", "o", false, MsgFlagOverwrite)
	flags.Bool("dry-run", false, MsgFlagDryRun)
	flags.String("delims", "", MsgFlagDelims)
	flags.String("missing-key", "", MsgFlagMissingKey)
}

// setup loads the configuration with command line overrides and starts
// logging. Commands that never touch templates skip the configuration so a
// broken config file cannot hide help or version output.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if skipsConfig(cmd) {
		logging.SetupLogger(a.verbosity)
		return nil
	}

	overrides, err := commandOverrides(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.Options{
		ConfigFile: a.configFile,
		WorkDir:    a.workDir,
		Overrides:  overrides,
	})
	if err != nil {
		logging.SetupLogger(a.verbosity)
		return err
	}
	a.cfg = cfg

	logging.SetupLoggerWithFile(cfg.Logging.Verbosity, cfg.Logging.File)
	logging.LogCommand(cmd.CommandPath(), args)
	return nil
}

func skipsConfig(cmd *cobra.Command) bool {
	if cmd.Annotations[annotationSkipConfig] == "true" {
		return true
	}
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

// commandOverrides turns the flags the user actually set into dotted
// configuration keys. Positional arguments of the render command are targets.
func commandOverrides(cmd *cobra.Command, args []string) (map[string]interface{}, error) {
	flags := cmd.Flags()
	overrides := make(map[string]interface{})

	for _, fk := range flagKeys {
		if f := flags.Lookup(fk.flag); f != nil && f.Changed {
			overrides[fk.key] = f.Value.String()
		}
	}

	if f := flags.Lookup("delims"); f != nil && f.Changed {
		left, right, err := parseDelims(f.Value.String())
		if err != nil {
			return nil, err
		}
		overrides["render.left_delim"] = left
		overrides["render.right_delim"] = right
	}

	if flags.Lookup("target") != nil {
		targetList, err := flags.GetStringArray("target")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --target value")
		}
		if cmd.Name() == "render" {
			targetList = append(targetList, args...)
		}
		if len(targetList) > 0 {
			overrides["render.targets"] = targetList
		}
	}

	return overrides, nil
}

// parseDelims splits "LEFT,RIGHT".
func parseDelims(s string) (string, string, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return "", "", errors.Newf(errors.ErrInvalidInput, "invalid --delims %q: expected LEFT,RIGHT", s).
			WithDetail("delims", s)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render [INPUT:OUTPUT...]",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		Example: MsgRenderExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd)
		},
	}
	addRenderFlags(cmd)
	return cmd
}

func newFuncsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "funcs",
		Short:   MsgFuncsShort,
		Long:    MsgFuncsLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFuncs(cmd)
		},
	}
}

func newContextCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "context",
		Short:   MsgContextShort,
		Long:    MsgContextLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			return a.runContext(cmd, format)
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", MsgFlagContextFmt)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "config",
		Annotations: map[string]string{
			annotationSkipConfig: "true",
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Long:  MsgConfigInitLong,
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			annotationSkipConfig: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			force, _ := cmd.Flags().GetBool("force")
			return a.runConfigInit(cmd, path, force)
		},
	}
	initCmd.Flags().String("path", "", MsgFlagConfigPath)
	initCmd.Flags().Bool("force", false, MsgFlagForce)

	cmd.AddCommand(initCmd)
	return cmd
}

func newTopicsCmd(tm *topics.TopicManager) *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Annotations: map[string]string{
			annotationSkipConfig: "true",
		},
		Run: func(cmd *cobra.Command, args []string) {
			tm.WriteTopicList(cmd.OutOrStdout(), cmd.Root().Name())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		Annotations: map[string]string{
			annotationSkipConfig: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Annotations: map[string]string{
			annotationSkipConfig: "true",
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man [dir]",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		Annotations: map[string]string{
			annotationSkipConfig: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			header := &doc.GenManHeader{
				Title:   "ENVTMPL",
				Section: "1",
				Source:  "envtmpl " + version.Version,
				Manual:  "envtmpl manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write man pages to %s", dir).
					WithDetail("output", dir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten+"\n", dir)
			return nil
		},
	}
}
