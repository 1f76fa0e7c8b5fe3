package envtmpl

import (
	"embed"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/talss89/envtmpl/pkg/cobrax/topics"
	"github.com/talss89/envtmpl/pkg/config"
	"github.com/talss89/envtmpl/pkg/ui"
)

//go:embed topics/*.md
var topicFiles embed.FS

// initTopics installs the topic-aware help command and returns the manager
// so the topics command can list them.
func initTopics(rootCmd *cobra.Command) (*topics.TopicManager, error) {
	renderer := topics.NewGlamourRenderer()
	renderer.Plain = func(w io.Writer) bool {
		return topics.NoColor(w) || plainOutputRequested(rootCmd)
	}
	return topics.Initialize(rootCmd, topicFiles, "topics", topics.Options{
		Extensions: []string{".md"},
		Renderer:   renderer,
	})
}

// plainOutputRequested reports whether --output-format or its environment
// variable asks for text or json. Help never loads the config files, so
// only those two are consulted.
func plainOutputRequested(rootCmd *cobra.Command) bool {
	raw := os.Getenv(config.EnvPrefix + "OUTPUT_FORMAT")
	if f := rootCmd.PersistentFlags().Lookup("output-format"); f != nil && f.Changed {
		raw = f.Value.String()
	}
	format, err := ui.ParseFormat(raw)
	return err == nil && (format == ui.FormatText || format == ui.FormatJSON)
}
