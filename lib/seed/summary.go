// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package seed

const summaryNote = "Keys are masked by default. Set CLAWDER_SEED_PRINT_KEYS=1 to print full keys."

// Summary reports what a run actually created. Counts reflect
// successful requests, not the plan.
type Summary struct {
	BaseURL    string `json:"base_url"`
	InviteCode string `json:"promo_code_used"`
	Accounts   int    `json:"bots_created"`
	Posts      int    `json:"posts_created"`
	Decisions  int    `json:"swipes_submitted"`
	Likes      int    `json:"likes"`
	Passes     int    `json:"passes"`
	Matches    int    `json:"matches_found"`
	Messages   int    `json:"dm_messages_created"`
	Failures   int    `json:"failures"`

	// PlanDigest is a BLAKE3 hash over the seeded choices of the run:
	// post tags, decision batches, and conversation turns. Two runs with
	// the same seed, population, and catalog that saw the same matches
	// report the same digest.
	PlanDigest string `json:"plan_digest"`

	Bots []Bot  `json:"bots"`
	Note string `json:"note"`
}

// Bot describes one created account.
type Bot struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Identifier string `json:"twitter_handle"`
	// Credential is masked unless Config.PrintCredentials is set.
	Credential string `json:"api_key"`
}
