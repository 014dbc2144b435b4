// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds account credentials outside the Go heap and
// renders them safely for output.
//
// [Buffer] allocates memory via mmap(MAP_ANONYMOUS), asks the kernel to
// lock it into RAM and exclude it from core dumps, and zeroes it on
// Close. [Mask] produces the display form of a credential used in seed
// summaries and log lines.
//
// Depends on golang.org/x/sys/unix.
package secret
