// Command netcmp computes pairwise network distance matrices.
//
// Usage:
//
//	netcmp <network_folder> <distance_type> <process_count> [flags]
//	netcmp list
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		stop()
		os.Exit(1)
	}
}
