// Command cinesearch is the CLI entry point for the retrieval engine: build
// an index from a crawler dump, search it, spell-correct queries, find
// near-duplicate documents, and score retrieval runs against ground truth.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cinesearch/retrieval/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
