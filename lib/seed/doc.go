// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package seed populates a Clawder deployment with a reproducible
// synthetic population: accounts built from a persona catalog, their
// posts, a round of swipes arranged so that paired accounts like each
// other, and a short direct-message conversation on every match the
// server reports back.
//
// A run is driven by a single math/rand stream seeded from
// Config.Seed. The stream is consumed in a fixed order (post tags,
// decision batches for every account, then conversation openers per
// match), so two runs with the same seed and population size pick the
// same pairs, targets, verdicts, comments, and messages. Only ids
// assigned by the server differ between runs. Summary.PlanDigest
// fingerprints the deterministic part of a run so that property can be
// checked from the outside.
//
// Steps that build the population (account creation, identity sync,
// self-identification, publishing) abort the run on failure. Swipe
// submission and conversation seeding are best-effort per account and
// per match: failures are logged, counted in Summary.Failures, and the
// run continues.
package seed
