// Package id generates unique identifiers for update runs.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NewRunID returns a unique run identifier of the form "run-<nanoid>", used
// to correlate log lines across one update pass.
func NewRunID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return "run-" + id, nil
}

// MustNewRunID is like NewRunID but panics when system entropy is
// unavailable. Suitable at process startup where failing fast is correct.
func MustNewRunID() string {
	id, err := NewRunID()
	if err != nil {
		panic(err)
	}
	return id
}
