package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"mdkb/internal/cli"
	"mdkb/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCmd(cli.LoadEnv).ExecuteContext(ctx)
	if err == nil {
		return
	}

	stop()
	fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
	if errors.Is(err, service.ErrNotFound) {
		os.Exit(2)
	}
	os.Exit(1)
}
