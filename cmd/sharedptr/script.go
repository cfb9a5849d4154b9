package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/sharedptr/errors"
)

//go:embed scenario.yaml
var defaultScenario []byte

// Script is a named list of session commands with optional expectations
// checked against the session tracker once all steps ran.
type Script struct {
	Expect *Expectation `yaml:"expect"`
	Name   string       `yaml:"name"`
	Steps  []string     `yaml:"steps"`
}

// Expectation holds tracker totals. Nil fields are not checked.
type Expectation struct {
	Live      *int `yaml:"live"`
	Created   *int `yaml:"created"`
	Destroyed *int `yaml:"destroyed"`
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.ParseFailed("script", err)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.InvalidInput(errors.PhaseScript, "script has no steps")
	}
	return &sc, nil
}

// LoadScript reads and decodes a YAML script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseScript, errors.KindNotFound, err, "read script")
	}
	return ParseScript(data)
}

// Run executes every step in s and then checks the expectations.
// It stops at the first failing step, or before the next step once ctx
// is done.
func (sc *Script) Run(ctx context.Context, s *Session) error {
	for i, step := range sc.Steps {
		if err := interrupted(ctx); err != nil {
			return err
		}
		if err := s.Exec(step); err != nil {
			return errors.Wrap(errors.PhaseScript, errors.KindInvalidData, err,
				fmt.Sprintf("%s step %d %q", sc.Name, i+1, step))
		}
	}
	return sc.check(s)
}

func (sc *Script) check(s *Session) error {
	if sc.Expect == nil {
		return nil
	}
	tr := s.Tracker()
	checks := []struct {
		name string
		want *int
		got  int
	}{
		{"live", sc.Expect.Live, tr.Len()},
		{"created", sc.Expect.Created, tr.Created()},
		{"destroyed", sc.Expect.Destroyed, tr.Destroyed()},
	}
	for _, c := range checks {
		if c.want != nil && *c.want != c.got {
			return errors.New(errors.PhaseScript, errors.KindInvalidData).
				Value(c.got).
				Detail("%s: expected %s=%d, got %d", sc.Name, c.name, *c.want, c.got).
				Build()
		}
	}
	return nil
}
