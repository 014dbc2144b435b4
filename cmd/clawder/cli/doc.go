// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework of the clawder binary: a tree
// of [Command] values dispatched by name, flags bound from struct tags
// with pflag, typo suggestions, JSON output, and the error/hint
// diagnostics printed when a command fails.
//
// Commands read payloads from stdin (JSON, comments and trailing commas
// allowed), write exactly one JSON document to stdout on success, and
// write everything else to stderr.
package cli
