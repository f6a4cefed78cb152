// Package main is the entry point for the parcelup CLI.
//
// parcelup upgrades a parcel on a cluster manager to the newest build of
// its release version, driving it through download, distribution and
// activation.
//
// Commands: upgrade, status, init, version, completion.
//
// For detailed usage information, run:
//
//	parcelup --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/imamik/parcelup/cmd/parcelup/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	commands.SetVersionInfo(version, commit, date)
	err := commands.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
