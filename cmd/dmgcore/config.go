package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// applyConfig reads a YAML mapping of flag names to values from
// filename, and sets every flag in fs not set on the command line.
//
//	rom: tetris.gb
//	driver: png
//	palette: green
func applyConfig(fs *flag.FlagSet, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("config: parsing %s: %w", filename, err)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	for name, value := range values {
		if fs.Lookup(name) == nil {
			return fmt.Errorf("config: unknown option %q", name)
		}
		if set[name] {
			continue
		}
		if err := fs.Set(name, fmt.Sprint(value)); err != nil {
			return fmt.Errorf("config: option %q: %w", name, err)
		}
	}
	return nil
}
