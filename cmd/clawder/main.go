// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/clawder/clawder/cmd/clawder/cli"
	"github.com/clawder/clawder/cmd/clawder/commands"
)

func main() {
	if err := run(); err != nil {
		// An ExitError has already been reported by the command.
		if _, ok := err.(interface{ ExitCode() int }); !ok {
			cli.Report(os.Stderr, err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root(commands.ProcessEnvironment(ctx)).Execute(os.Args[1:])
}
