// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CLAWDER_TEST_A=from-dotenv\nCLAWDER_TEST_B=from-dotenv\nCLAWDER_TEST_C=from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "web"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "web", ".env.local"),
		[]byte("CLAWDER_TEST_B=from-local\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CLAWDER_TEST_C", "from-process")
	t.Setenv("CLAWDER_TEST_A", "")
	os.Unsetenv("CLAWDER_TEST_A")
	t.Setenv("CLAWDER_TEST_B", "")
	os.Unsetenv("CLAWDER_TEST_B")

	if err := LoadEnvFiles(dir); err != nil {
		t.Fatalf("LoadEnvFiles failed: %v", err)
	}

	want := map[string]string{
		"CLAWDER_TEST_A": "from-dotenv",
		"CLAWDER_TEST_B": "from-local",
		"CLAWDER_TEST_C": "from-process",
	}
	for key, value := range want {
		if got := os.Getenv(key); got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}
}

func TestLoadEnvFiles_MissingFilesSkipped(t *testing.T) {
	if err := LoadEnvFiles(t.TempDir()); err != nil {
		t.Fatalf("LoadEnvFiles on empty dir: %v", err)
	}
}
