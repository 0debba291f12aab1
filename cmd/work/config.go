package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hochfrequenz/shift-tracker/internal/config"
	"github.com/hochfrequenz/shift-tracker/internal/recordstore"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func addConfigCommands(rootCmd *cobra.Command, a *app) {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigInit(force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	configCmd.AddCommand(initCmd, &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  a.runConfigShow,
	})
	rootCmd.AddCommand(configCmd)
}

func (a *app) resolvedConfigPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.DefaultConfigPath()
}

func (a *app) runConfigInit(force bool) error {
	path := a.resolvedConfigPath()
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}
	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	a.printer().Infof("Wrote %s", path)
	return nil
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := toml.Marshal(a.cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "# %s\n", a.resolvedConfigPath())
	fmt.Fprintf(a.out, "# record: %s\n", filepath.Join(a.cfg.General.DataDir, recordstore.FileName(a.cfg.General.Backend)))
	_, err = a.out.Write(data)
	return err
}
