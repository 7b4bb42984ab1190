package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// runConfig narrows a dump/load run to a subset of tables, grounded on
// the teacher's database.ParseGeneratorConfig: a newline-delimited
// target_tables/skip_tables YAML block, rather than a true YAML list,
// to stay close to the source format this is ported from.
type runConfig struct {
	TargetTables []string
	SkipTables   []string
	Concurrency  int
}

type runConfigYAML struct {
	TargetTables    string `yaml:"target_tables"`
	SkipTables      string `yaml:"skip_tables"`
	DumpConcurrency int    `yaml:"dump_concurrency"`
}

// parseRunConfig reads and decodes a YAML config file. An empty path
// yields a zero-value runConfig rather than an error, since --config is
// optional.
func parseRunConfig(path string) (runConfig, error) {
	if path == "" {
		return runConfig{}, nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return runConfig{}, fmt.Errorf("fabrixctl: read config: %w", err)
	}
	return parseRunConfigBytes(buf)
}

func parseRunConfigBytes(buf []byte) (runConfig, error) {
	var raw runConfigYAML
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	if err := dec.Decode(&raw); err != nil {
		return runConfig{}, fmt.Errorf("fabrixctl: parse config: %w", err)
	}
	return runConfig{
		TargetTables: splitNonEmptyLines(raw.TargetTables),
		SkipTables:   splitNonEmptyLines(raw.SkipTables),
		Concurrency:  raw.DumpConcurrency,
	}, nil
}

func splitNonEmptyLines(s string) []string {
	s = strings.Trim(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// filterTables applies target_tables (if set, an allow-list) then
// skip_tables (a deny-list) to names, in that order.
func (c runConfig) filterTables(names []string) []string {
	if len(c.TargetTables) > 0 {
		allow := make(map[string]bool, len(c.TargetTables))
		for _, t := range c.TargetTables {
			allow[t] = true
		}
		filtered := names[:0:0]
		for _, n := range names {
			if allow[n] {
				filtered = append(filtered, n)
			}
		}
		names = filtered
	}
	if len(c.SkipTables) > 0 {
		deny := make(map[string]bool, len(c.SkipTables))
		for _, t := range c.SkipTables {
			deny[t] = true
		}
		filtered := names[:0:0]
		for _, n := range names {
			if !deny[n] {
				filtered = append(filtered, n)
			}
		}
		names = filtered
	}
	return names
}
