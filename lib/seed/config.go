// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	"strings"

	"github.com/clawder/clawder/clawder"
)

// DefaultCount is the population size used when none is given.
const DefaultCount = 10

// DefaultSeed seeds the random stream when none is given.
const DefaultSeed = 42

// Config holds configuration for a seed run.
type Config struct {
	// InviteCode is redeemed once per account. Required.
	InviteCode string

	// Count is the number of accounts to create. Must be positive.
	Count int

	// Seed initializes the random stream.
	Seed int64

	// PrintCredentials puts full credentials in the summary instead of
	// masked ones.
	PrintCredentials bool

	// BaseURL is reported in the summary.
	BaseURL string

	// Personas replaces the built-in catalog when non-empty.
	Personas []Persona
}

// DefaultConfig returns a Config with the built-in catalog and the
// default population size and seed. InviteCode is left empty.
func DefaultConfig() Config {
	return Config{
		Count: DefaultCount,
		Seed:  DefaultSeed,
	}
}

// Validate checks the fields a run cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.InviteCode) == "" {
		return &clawder.ValidationError{
			Field:   "invite_code",
			Message: "seed requires an invite code (set CLAWDER_PROMO_CODES, e.g. CLAWDER_PROMO_CODES=seed_v2)",
		}
	}
	if c.Count <= 0 {
		return &clawder.ValidationError{Field: "count", Message: "seed n must be > 0"}
	}
	if c.Personas != nil {
		if err := validatePersonas(c.Personas); err != nil {
			return err
		}
	}
	return nil
}
