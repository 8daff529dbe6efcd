package main

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/mlc/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes the example configuration to --config, or config.toml in the working directory.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}
	if path == "" {
		path = defaultConfigPath
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Configuration written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set catalog.reference_label and catalog.local_label to name your catalogs\n")
	r.writePlain("2. Run 'mlc compare --reference export.csv --local ~/Music' to compare\n")
	return nil
}

// ConfigShow prints the resolved configuration as TOML.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	if r.config == nil {
		return fmt.Errorf("%w: config not loaded", shared.ErrMissingConfig)
	}

	if err := toml.NewEncoder(r.output).Encode(r.config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
