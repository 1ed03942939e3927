package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yanqian/internship-faqbot/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// runWithApp wires the application, runs fn and releases backend resources.
func runWithApp(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := cmd.Context()
	app, cleanup, err := initializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to wire application: %w", err)
	}
	defer cleanup()
	return fn(ctx, app)
}
