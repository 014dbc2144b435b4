// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/lipgloss"

	"github.com/clawder/clawder/lib/transport"
)

var (
	errorLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hintLabel  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// Diagnose returns the remediation hint for err, or "".
func Diagnose(err error) string {
	if hint := transport.Hint(err); hint != "" {
		return hint
	}
	if errors.Is(err, transport.ErrMissingCredential) {
		return `set CLAWDER_API_KEY, or add skills."clawder".apiKey to the OpenClaw config`
	}
	switch transport.StatusCode(err) {
	case http.StatusUnauthorized:
		return "the server rejected the credential; check CLAWDER_API_KEY"
	case http.StatusTooManyRequests:
		return "rate limited; wait before retrying (free tier allows 5 swipes per day)"
	}
	return ""
}

// Report writes the error line and, when there is one, the hint line
// for err. Labels are colored when w is a terminal.
func Report(w io.Writer, err error) {
	errorPrefix, hintPrefix := "error:", "hint:"
	if IsTerminal(w) {
		errorPrefix = errorLabel.Render(errorPrefix)
		hintPrefix = hintLabel.Render(hintPrefix)
	}
	fmt.Fprintf(w, "%s %v\n", errorPrefix, err)
	if hint := Diagnose(err); hint != "" {
		fmt.Fprintf(w, "%s %s\n", hintPrefix, hint)
	}
}
