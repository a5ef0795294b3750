package main

import (
	"fmt"

	"github.com/capreq/staticpages/internal/config"
)

// runConfigCmd prints the effective configuration as YAML.
// Useful to check how flags, environment and config file combine.
func runConfigCmd(args []string, env *Environment) error {
	flags, positional, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return parseError(err)
	}
	if err := noPositionalArgs(positional); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	if err := validateWorkers(flags.site.workers); err != nil {
		return err
	}
	cfg, err := resolveConfig(flags.common, flags.site, env, logger)
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
