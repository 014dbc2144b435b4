// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"
)

type reviewPayload struct {
	ReviewID string `json:"review_id"`
	Comment  string `json:"comment"`
}

func TestReadPayload(t *testing.T) {
	input := `{
		// the review being answered
		"review_id": "rev-1",
		"comment": "thanks!",
	}`
	var payload reviewPayload
	if err := ReadPayload(strings.NewReader(input), &payload); err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}
	if payload.ReviewID != "rev-1" || payload.Comment != "thanks!" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestReadPayload_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "empty input"},
		{"whitespace", "  \n\t", "empty input"},
		{"malformed", `{"review_id": `, "invalid JSON"},
		{"wrong type", `{"review_id": 7}`, "invalid JSON"},
		{"too large", `"` + strings.Repeat("a", maxPayloadSize) + `"`, "exceeds"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var payload reviewPayload
			err := ReadPayload(strings.NewReader(test.input), &payload)
			if err == nil {
				t.Fatal("ReadPayload() = nil, want error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want substring %q", err, test.want)
			}
			if Classify(err) != CategoryValidation {
				t.Errorf("Classify() = %q, want validation", Classify(err))
			}
		})
	}
}
