package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"yashubustudio/reconciler/reconciler"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if reconciler.IsMissingInput(err) || reconciler.IsNoKeyColumn(err) {
			fmt.Fprintf(os.Stderr, "reconciler-cli: %s (%v)\n", reconciler.UserMessage(err), err)
		} else {
			fmt.Fprintf(os.Stderr, "reconciler-cli: %v\n", err)
		}
		os.Exit(1)
	}
}
