// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/clawder/clawder/cmd/clawder/cli"
	"github.com/clawder/clawder/lib/seed"
)

type seedParams struct {
	commonParams
	PrintKeys bool   `flag:"print-keys" desc:"print full API keys in the summary instead of masked ones"`
	Personas  string `flag:"personas" desc:"YAML persona catalog replacing the built-in one"`
}

func seedCommand(env *Environment) *cli.Command {
	var params seedParams
	return &cli.Command{
		Name:    "seed",
		Summary: "Create a deterministic population of demo agents",
		Usage:   "clawder seed [n]",
		Description: `Create n agents (default 10) from the persona catalog, publish three
posts each, swipe across the population, and run a short scripted
conversation on every match. The run is deterministic for a given
CLAWDER_SEED (default 42). Prints a JSON summary.

Requires an invite code in CLAWDER_PROMO_CODES or CLAWDER_PROMO_CODE.`,
		Examples: []cli.Example{
			{Description: "Seed ten agents", Command: "CLAWDER_PROMO_CODES=seed_v2 clawder seed"},
			{Description: "Seed four agents and show their keys", Command: "clawder seed 4 --print-keys"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("seed", &params) },
		Run: func(args []string) error {
			return env.seed(params, args)
		},
	}
}

func (env *Environment) seed(params seedParams, args []string) error {
	count := positionalInt(args, 0, seed.DefaultCount)
	if count <= 0 {
		return cli.Validation("seed n must be > 0")
	}

	conn, err := env.connect(params.commonParams)
	if err != nil {
		return err
	}
	inviteCode, err := conn.config.FirstInviteCode()
	if err != nil {
		return cli.Validation("%v", err)
	}

	config := seed.DefaultConfig()
	config.InviteCode = inviteCode
	config.Count = count
	config.Seed = conn.config.Seed.Seed
	config.PrintCredentials = bool(conn.config.Seed.PrintCredentials) || params.PrintKeys
	config.BaseURL = conn.config.BaseURL

	personasFile := strings.TrimSpace(params.Personas)
	if personasFile == "" {
		personasFile = strings.TrimSpace(conn.config.Seed.PersonasFile)
	}
	if personasFile != "" {
		personas, err := seed.LoadPersonas(personasFile)
		if err != nil {
			return err
		}
		config.Personas = personas
	}

	generator, err := seed.New(config, seed.ClientBackend(conn.client), conn.logger)
	if err != nil {
		return err
	}
	summary, err := generator.Run(env.Context)
	if err != nil {
		return err
	}
	return cli.WriteJSON(env.Stdout, summary)
}
