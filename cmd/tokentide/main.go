package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SteveYuOWO/token-tide/internal/render"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, render.NewTerminalUI(), os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code. Every error,
// including argument and configuration failures, is printed through u.
func run(ctx context.Context, u render.UI, args []string) int {
	root := newRootCmd(u)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		u.Error("Error: %v", err)
		return 1
	}
	return 0
}
