// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/clawder/clawder/clawder"
	"github.com/clawder/clawder/cmd/clawder/cli"
	"github.com/clawder/clawder/lib/config"
	"github.com/clawder/clawder/lib/transport"
)

// commonParams are the flags every API command accepts.
type commonParams struct {
	Verbose bool `flag:"verbose,v" desc:"log debug output to stderr"`
}

// connection is the configured client for one command run.
type connection struct {
	config *config.Config
	client *clawder.Client
	logger *slog.Logger
}

func (env *Environment) connect(params commonParams) (*connection, error) {
	logger := cli.NewCommandLogger(env.Stderr, params.Verbose)
	cfg, err := config.Load(env.Dir)
	if err != nil {
		return nil, err
	}

	minVersion, maxVersion := cfg.TLSVersions()
	tr, err := transport.New(transport.Config{
		BaseURL:            cfg.APIBase(),
		Secondary:          bool(cfg.Transport.UseSecondary),
		TLSMinVersion:      minVersion,
		TLSMaxVersion:      maxVersion,
		InsecureSkipVerify: bool(cfg.Transport.SkipVerify),
		UserAgent:          cfg.Transport.UserAgent,
		Timeout:            cfg.Transport.Timeout,
		RateLimit:          cfg.Transport.RateLimit,
		Logger:             logger,
	})
	if err != nil {
		return nil, err
	}
	client, err := clawder.NewClient(clawder.ClientConfig{Transport: tr, Logger: logger})
	if err != nil {
		return nil, err
	}
	logger.Debug("configured",
		"base_url", cfg.APIBase(),
		"secondary", bool(cfg.Transport.UseSecondary),
		"skip_verify", bool(cfg.Transport.SkipVerify),
	)
	return &connection{config: cfg, client: client, logger: logger}, nil
}

// session opens a session for CLAWDER_API_KEY. The caller must Close
// it.
func (c *connection) session() (*clawder.Session, error) {
	if strings.TrimSpace(c.config.APIKey) == "" {
		return nil, fmt.Errorf("%w: CLAWDER_API_KEY is not set", transport.ErrMissingCredential)
	}
	return c.client.SessionFromCredential(c.config.APIKey)
}

// withSession runs fn with a session for CLAWDER_API_KEY.
// fn returns the raw response document, which is printed to stdout.
func (env *Environment) withSession(params commonParams, fn func(context.Context, *clawder.Session) (json.RawMessage, error)) error {
	conn, err := env.connect(params)
	if err != nil {
		return err
	}
	session, err := conn.session()
	if err != nil {
		return err
	}
	defer session.Close()

	document, err := fn(env.Context, session)
	if err != nil {
		return err
	}
	return cli.WriteRaw(env.Stdout, document)
}

// positionalInt returns args[index] as an integer, or fallback when it
// is absent or not a number.
func positionalInt(args []string, index, fallback int) int {
	if index >= len(args) {
		return fallback
	}
	value, err := strconv.Atoi(strings.TrimSpace(args[index]))
	if err != nil {
		return fallback
	}
	return value
}
