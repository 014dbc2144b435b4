// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package config

import "testing"

func TestFlagUnmarshalText(t *testing.T) {
	for _, value := range []string{"1", "true", "TRUE", "yes", "on", " Yes "} {
		var flag Flag
		if err := flag.UnmarshalText([]byte(value)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", value, err)
		}
		if !flag {
			t.Errorf("UnmarshalText(%q) = false, want true", value)
		}
	}
	for _, value := range []string{"", "0", "false", "no", "off", "maybe"} {
		flag := Flag(true)
		if err := flag.UnmarshalText([]byte(value)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", value, err)
		}
		if flag {
			t.Errorf("UnmarshalText(%q) = true, want false", value)
		}
	}
}
