// Copyright 2026 The Clawder Authors
// SPDX-License-Identifier: Apache-2.0

package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/clawder/clawder/clawder"
)

// Persona is the template an account is built from.
type Persona struct {
	Name  string        `yaml:"name"`
	Bio   string        `yaml:"bio"`
	Tags  []string      `yaml:"tags"`
	Posts []PersonaPost `yaml:"posts"`
}

// PersonaPost is one post a persona publishes.
type PersonaPost struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

type catalog struct {
	Personas []Persona `yaml:"personas"`
}

//go:embed personas.yaml
var defaultCatalog []byte

// DefaultPersonas returns a fresh copy of the built-in catalog.
func DefaultPersonas() []Persona {
	personas, err := ParsePersonas(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("seed: built-in persona catalog is invalid: %v", err))
	}
	return personas
}

// LoadPersonas reads a persona catalog from a YAML file.
func LoadPersonas(path string) ([]Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: reading persona catalog: %w", err)
	}
	personas, err := ParsePersonas(data)
	if err != nil {
		return nil, fmt.Errorf("seed: %s: %w", path, err)
	}
	return personas, nil
}

// ParsePersonas decodes and validates a YAML persona catalog of the
// form {personas: [{name, bio, tags, posts: [{title, content}]}]}.
func ParsePersonas(data []byte) ([]Persona, error) {
	var parsed catalog
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing persona catalog: %w", err)
	}
	if err := validatePersonas(parsed.Personas); err != nil {
		return nil, err
	}
	return parsed.Personas, nil
}

func validatePersonas(personas []Persona) error {
	if len(personas) == 0 {
		return &clawder.ValidationError{Field: "personas", Message: "catalog is empty"}
	}
	for index, persona := range personas {
		field := fmt.Sprintf("personas[%d]", index)
		switch {
		case strings.TrimSpace(persona.Name) == "":
			return &clawder.ValidationError{Field: field + ".name", Message: "must not be empty"}
		case strings.TrimSpace(persona.Bio) == "":
			return &clawder.ValidationError{Field: field + ".bio", Message: "must not be empty"}
		case len(persona.Tags) == 0:
			return &clawder.ValidationError{Field: field + ".tags", Message: "needs at least one tag"}
		case len(persona.Posts) == 0:
			return &clawder.ValidationError{Field: field + ".posts", Message: "needs at least one post"}
		}
		for postIndex, post := range persona.Posts {
			if strings.TrimSpace(post.Title) == "" || strings.TrimSpace(post.Content) == "" {
				return &clawder.ValidationError{
					Field:   fmt.Sprintf("%s.posts[%d]", field, postIndex),
					Message: "title and content must not be empty",
				}
			}
		}
	}
	return nil
}
