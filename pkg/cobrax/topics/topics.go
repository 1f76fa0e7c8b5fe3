// Package topics adds free-form help topics to a Cobra application. Topics
// are text or markdown files read from an fs.FS, usually an embedded one, and
// are reachable as "help <topic>" next to the regular command help.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	fsys         fs.FS
	root         string
	topics       map[string]*Topic
	originalHelp func(*cobra.Command, []string)
	extensions   []string
	renderer     Renderer
}

// Topic represents a help topic
type Topic struct {
	Name     string
	FilePath string
	Content  string
}

// Options configures the TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics
	// Defaults to [".txt", ".md"] if not specified
	Extensions []string

	// Renderer for formatting topic content (optional)
	// Defaults to PlainRenderer if not specified
	Renderer Renderer
}

// New creates a TopicManager over root inside fsys.
func New(fsys fs.FS, root string, opts Options) *TopicManager {
	tm := &TopicManager{
		fsys:       fsys,
		root:       root,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}
	return tm
}

// Scan loads every topic file under the root. A missing root means no topics.
func (tm *TopicManager) Scan() error {
	if _, err := fs.Stat(tm.fsys, tm.root); err != nil {
		return nil
	}

	return fs.WalkDir(tm.fsys, tm.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(tm.fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{Name: name, FilePath: p, Content: string(content)}
		return nil
	})
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// GetTopic retrieves a topic by name
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	// Flag-style lookups: --dry-run finds "dry-run" or "option-dry-run"
	name = strings.TrimPrefix(name, "--")
	name = strings.TrimPrefix(name, "-")

	if topic, ok := tm.topics[name]; ok {
		return topic, true
	}
	topic, ok := tm.topics["option-"+name]
	return topic, ok
}

// ListTopics returns all available topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderTopic writes a topic through the configured renderer.
func (tm *TopicManager) RenderTopic(w io.Writer, topic *Topic) error {
	return tm.renderer.Render(w, topic.Content, path.Ext(topic.FilePath))
}

// WriteTopicList prints general topics and option topics in two groups.
func (tm *TopicManager) WriteTopicList(w io.Writer, appName string) {
	names := tm.ListTopics()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)
}

// Initialize scans the topics and installs a help command and help function
// on rootCmd that know about them.
func Initialize(rootCmd *cobra.Command, fsys fs.FS, root string, opts Options) (*TopicManager, error) {
	tm := New(fsys, root, opts)
	if err := tm.Scan(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}

	tm.originalHelp = rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		// Flag-style topics such as "help --dry-run" arrive as plain args
		DisableFlagParsing: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			args = applyPersistentFlags(rootCmd, args)
			if len(args) == 0 {
				tm.originalHelp(rootCmd, []string{})
				return nil
			}
			if args[0] == "topics" {
				tm.WriteTopicList(out, rootCmd.Name())
				return nil
			}
			if topic, ok := tm.GetTopic(args[0]); ok {
				return tm.RenderTopic(out, topic)
			}

			// Not a topic: show help for the named command if there is one
			if target, _, err := rootCmd.Find(args); err == nil && target != nil {
				tm.originalHelp(target, []string{})
				return nil
			}
			tm.originalHelp(rootCmd, args)
			return nil
		},
	}

	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, ok := tm.GetTopic(args[0]); ok {
				if err := tm.RenderTopic(cmd.OutOrStdout(), topic); err != nil {
					cmd.PrintErrln(err)
				}
				return
			}
		}
		tm.originalHelp(cmd, args)
	})

	return tm, nil
}

// applyPersistentFlags sets the root's persistent flags found in args and
// returns what is left. The help command does not parse flags, so
// "app --verbose help topic" would otherwise look up "--verbose".
func applyPersistentFlags(rootCmd *cobra.Command, args []string) []string {
	flags := rootCmd.PersistentFlags()
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, val, hasVal := "", "", false
		switch {
		case strings.HasPrefix(arg, "--") && len(arg) > 2:
			name = arg[2:]
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				name, val, hasVal = name[:eq], name[eq+1:], true
			}
		case len(arg) == 2 && arg[0] == '-' && arg[1] != '-':
			if f := flags.ShorthandLookup(arg[1:]); f != nil {
				name = f.Name
			}
		}

		f := flags.Lookup(name)
		if name == "" || f == nil {
			rest = append(rest, arg)
			continue
		}
		if !hasVal {
			switch {
			case f.NoOptDefVal != "":
				val = f.NoOptDefVal
			case i+1 < len(args):
				i++
				val = args[i]
			}
		}
		_ = flags.Set(f.Name, val)
	}
	return rest
}
