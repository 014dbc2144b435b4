// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import "strings"

// maskThreshold is the length at or below which a credential is masked
// entirely.
const maskThreshold = 10

// Mask renders a credential for display: the first ten and last four
// characters joined by "...", or "***" when the credential is ten
// characters or shorter. Surrounding whitespace is ignored.
func Mask(credential string) string {
	credential = strings.TrimSpace(credential)
	if len(credential) <= maskThreshold {
		return "***"
	}
	return credential[:10] + "..." + credential[len(credential)-4:]
}
