// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFiles are the env files merged by LoadEnvFiles, relative to the
// directory passed in. Later files override earlier ones.
var EnvFiles = []string{".env", filepath.Join("web", ".env.local")}

// LoadEnvFiles merges EnvFiles found under dir into the process
// environment. Missing files are skipped. A variable already present
// in the environment keeps its value.
func LoadEnvFiles(dir string) error {
	merged := make(map[string]string)
	for _, name := range EnvFiles {
		path := filepath.Join(dir, name)
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("config: reading %s: %w", path, err)
		}
		for key, value := range values {
			merged[key] = value
		}
	}

	for key, value := range merged {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("config: setting %s: %w", key, err)
		}
	}
	return nil
}
