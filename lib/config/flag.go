// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Flag is a boolean switch that accepts the spellings people put in
// env files: 1/true/yes/on enable it, anything else disables it.
type Flag bool

// UnmarshalText implements encoding.TextUnmarshaler for the
// environment layer.
func (f *Flag) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "1", "true", "yes", "on":
		*f = true
	default:
		*f = false
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler for the file layer.
func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	return f.UnmarshalText([]byte(node.Value))
}
