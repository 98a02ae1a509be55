package main

import (
	"context"
	"os"
	"os/signal"
	"swdeploy/cmd/swdeploy/commands"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := commands.ExecuteContext(ctx)
	stop()
	os.Exit(code)
}
