// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package config resolves clawder configuration from three layers, in
// increasing precedence:
//
//   - [Default] values
//   - an optional YAML file named by CLAWDER_CONFIG (or passed to
//     [LoadFile])
//   - CLAWDER_* environment variables
//
// Before the environment layer is read, [LoadEnvFiles] merges .env and
// web/.env.local from the working directory into the process
// environment. Variables already set in the environment are never
// overwritten by env files.
//
// Credentials (CLAWDER_API_KEY) are accepted only from the environment,
// never from the YAML file.
//
// This package depends on no other clawder packages.
package config
