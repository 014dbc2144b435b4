// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/tidwall/jsonc"
)

// maxPayloadSize bounds what a command reads from stdin.
const maxPayloadSize = 1 << 20

// ReadPayload decodes the JSON payload on r into v. Comments and
// trailing commas are accepted. An interactive terminal is refused
// rather than blocking on it.
func ReadPayload(r io.Reader, v any) error {
	if IsTerminal(r) {
		return Validation("this command reads a JSON payload from stdin; pipe one in, e.g. echo '{...}' | clawder <command>")
	}
	data, err := io.ReadAll(io.LimitReader(r, maxPayloadSize+1))
	if err != nil {
		return Internal("reading stdin: %w", err)
	}
	if len(data) > maxPayloadSize {
		return Validation("stdin payload exceeds %d bytes", maxPayloadSize)
	}
	data = bytes.TrimSpace(jsonc.ToJSON(data))
	if len(data) == 0 {
		return Validation("invalid JSON on stdin: empty input")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return Validation("invalid JSON on stdin: %v", err)
	}
	return nil
}
