package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/talss89/envtmpl/cmd/envtmpl"
	"github.com/talss89/envtmpl/internal/version"
)

func main() {
	rootCmd := envtmpl.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "ENVTMPL",
		Section: "1",
		Source:  "envtmpl " + version.Version,
		Manual:  "envtmpl manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
