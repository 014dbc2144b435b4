// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var buffer bytes.Buffer
	value := map[string]any{"name": "Zoë <ops>", "count": 2}
	if err := WriteJSON(&buffer, value); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	want := "{\n  \"count\": 2,\n  \"name\": \"Zoë <ops>\"\n}\n"
	if buffer.String() != want {
		t.Errorf("WriteJSON() = %q, want %q", buffer.String(), want)
	}
}

func TestWriteJSON_NilSlice(t *testing.T) {
	var buffer bytes.Buffer
	var bots []string
	if err := WriteJSON(&buffer, bots); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if buffer.String() != "[]\n" {
		t.Errorf("WriteJSON(nil slice) = %q, want %q", buffer.String(), "[]\n")
	}
}

func TestWriteRaw_PreservesFieldOrder(t *testing.T) {
	var buffer bytes.Buffer
	document := []byte(`  {"data":{"z":1,"a":[true]},"notifications":[]}  `)
	if err := WriteRaw(&buffer, document); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	want := "{\n  \"data\": {\n    \"z\": 1,\n    \"a\": [\n      true\n    ]\n  },\n  \"notifications\": []\n}\n"
	if buffer.String() != want {
		t.Errorf("WriteRaw() = %q, want %q", buffer.String(), want)
	}
}

func TestWriteRaw_Invalid(t *testing.T) {
	err := WriteRaw(&bytes.Buffer{}, []byte("{not json"))
	if err == nil {
		t.Fatal("WriteRaw() = nil, want error")
	}
	if Classify(err) != CategoryInternal {
		t.Errorf("Classify() = %q, want internal", Classify(err))
	}
}
