package envtmpl

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Render configuration templates from the environment"
	MsgRenderShort     = "Render INPUT:OUTPUT targets"
	MsgFuncsShort      = "List the template functions"
	MsgContextShort    = "Print the data templates are rendered against"
	MsgConfigShort     = "Manage the envtmpl configuration file"
	MsgConfigInitShort = "Write a commented default configuration file"
	MsgTopicsShort     = "List all topics or show help for a topic"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate man pages into a directory"

	// Status messages
	MsgConfigWritten   = "Wrote configuration to %s"
	MsgManWritten      = "Wrote man pages to %s"
	MsgVersionFormat   = "envtmpl version %s\n  commit: %s\n  built:  %s\n"
	MsgNoTargetsFormat = "no targets given; use -t INPUT:OUTPUT, render.targets in the configuration, or run '%s help'"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Use this configuration file instead of .envtmpl.toml in the current directory"
	MsgFlagOutputFormat = "Output format: auto, term, text or json"
	MsgFlagTarget       = "Target as INPUT:OUTPUT (repeatable)"
	MsgFlagOverwrite    = "Replace outputs that already exist"
	MsgFlagDryRun       = "Render templates without writing anything"
	MsgFlagDelims       = "Template delimiters as LEFT,RIGHT, e.g. \"[[,]]\""
	MsgFlagMissingKey   = "Behaviour for missing map keys: default, zero or error"
	MsgFlagContextFmt   = "Output format: yaml, toml or json"
	MsgFlagConfigPath   = "Write to this path instead of the user configuration file"
	MsgFlagForce        = "Replace an existing configuration file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimRight(msgRenderExampleRaw, "\n")

	//go:embed msgs/funcs-long.txt
	msgFuncsLongRaw string
	MsgFuncsLong    = strings.TrimSpace(msgFuncsLongRaw)

	//go:embed msgs/context-long.txt
	msgContextLongRaw string
	MsgContextLong    = strings.TrimSpace(msgContextLongRaw)

	//go:embed msgs/config-init-long.txt
	msgConfigInitLongRaw string
	MsgConfigInitLong    = strings.TrimSpace(msgConfigInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
