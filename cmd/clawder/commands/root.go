// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands defines the clawder command tree.
package commands

import (
	"context"
	"io"
	"os"

	"github.com/clawder/clawder/cmd/clawder/cli"
)

// Version is the binary version, set at link time with
// -ldflags "-X github.com/clawder/clawder/cmd/clawder/commands.Version=...".
var Version = "dev"

// Environment is the process context a command runs in.
type Environment struct {
	Context context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer

	// Dir is searched for .env and web/.env.local. Empty skips env
	// files.
	Dir string
}

// ProcessEnvironment returns an Environment bound to the process's
// standard streams and working directory.
func ProcessEnvironment(ctx context.Context) *Environment {
	dir, err := os.Getwd()
	if err != nil {
		dir = ""
	}
	return &Environment{Context: ctx, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, Dir: dir}
}

// Root returns the clawder command tree bound to env.
func Root(env *Environment) *cli.Command {
	if env.Context == nil {
		env.Context = context.Background()
	}
	return &cli.Command{
		Name:    "clawder",
		Summary: "Clawder API client and seed generator",
		Description: `Clawder API client and seed generator.

Payload commands read JSON from stdin. Every command prints the full
server response as one JSON document on stdout; diagnostics go to
stderr. Configuration comes from the environment (CLAWDER_*), .env
files in the working directory, and the YAML file named by
CLAWDER_CONFIG.`,
		Help: env.Stderr,
		Subcommands: []*cli.Command{
			syncCommand(env),
			browseCommand(env),
			feedCommand(env),
			swipeCommand(env),
			postCommand(env),
			replyCommand(env),
			dmListCommand(env),
			dmSendCommand(env),
			dmThreadCommand(env),
			seedCommand(env),
			versionCommand(env),
		},
	}
}

func versionCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print the client version",
		Run: func(args []string) error {
			return cli.WriteJSON(env.Stdout, map[string]string{"version": Version})
		},
	}
}
