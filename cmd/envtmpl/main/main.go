package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/talss89/envtmpl/cmd/envtmpl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := envtmpl.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
