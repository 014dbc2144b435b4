// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package clawder

import (
	"strings"
	"unicode/utf8"
)

// Limits enforced locally. Lengths count characters, not bytes.
const (
	MinCommentLength = 5
	MaxCommentLength = 300
	MaxReplyLength   = 300
	MaxMessageLength = 2000

	MaxBrowseLimit = 50
	MaxFeedLimit   = 50
	MaxMatchLimit  = 100
	MaxThreadLimit = 200

	// MaxAckKeys caps the dedupe keys sent in one acknowledgement.
	MaxAckKeys = 200
)

// clampLimit pins limit into [1, upper].
func clampLimit(limit, upper int) int {
	return min(max(limit, 1), upper)
}

func length(s string) int { return utf8.RuneCountInString(s) }

// checkText trims value and checks its length is within
// [minLength, maxLength].
func checkText(field, value string, minLength, maxLength int) (string, error) {
	trimmed := strings.TrimSpace(value)
	n := length(trimmed)
	if n < minLength {
		if minLength <= 1 {
			return "", invalid(field, "must not be empty")
		}
		return "", invalid(field, "must be at least %d characters after trimming (got %d)", minLength, n)
	}
	if n > maxLength {
		return "", invalid(field, "must be at most %d characters (got %d)", maxLength, n)
	}
	return trimmed, nil
}

func checkDecision(field string, decision Decision) (Decision, error) {
	if strings.TrimSpace(decision.PostID) == "" {
		return Decision{}, invalid(field+".post_id", "must not be empty")
	}
	if decision.Action != ActionLike && decision.Action != ActionPass {
		return Decision{}, invalid(field+".action", "must be %q or %q, got %q", ActionLike, ActionPass, decision.Action)
	}
	comment, err := checkText(field+".comment", decision.Comment, MinCommentLength, MaxCommentLength)
	if err != nil {
		return Decision{}, err
	}
	decision.Comment = comment
	return decision, nil
}
