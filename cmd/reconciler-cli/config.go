package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yashubustudio/reconciler/reconciler"
)

func (c *cli) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage config.yaml",
	}
	cmd.AddCommand(c.newConfigInitCmd(), c.newConfigShowCmd())
	return cmd
}

// configPath is the --config value, or config.yaml when unset.
func (c *cli) configPath() string {
	if p := strings.TrimSpace(c.v.GetString("config")); p != "" {
		return p
	}
	return "config.yaml"
}

func (c *cli) newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration, flags and environment included",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := c.configPath()
			if force {
				if err := reconciler.SaveConfig(path, c.cfg); err != nil {
					return err
				}
			} else {
				created, err := reconciler.EnsureConfigFile(path, c.cfg)
				if err != nil {
					return err
				}
				if !created {
					return fmt.Errorf("%s already exists, use --force to overwrite", path)
				}
			}
			c.logger.Info().Str("path", path).Bool("force", force).Msg("config written")
			fmt.Fprintf(cmd.OutOrStdout(), "Configuração gravada em %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func (c *cli) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.cfg
			rows := [][]string{
				{"keyColumnTokens", strings.Join(cfg.KeyColumnTokens, ", ")},
				{"textColumn", cfg.TextColumn},
				{"dictionaryPath", cfg.DictionaryPath},
				{"outputDir", cfg.OutputDir},
				{"sheetName", cfg.SheetName},
				{"log.level", cfg.Log.Level},
				{"log.format", cfg.Log.Format},
				{"log.output", cfg.Log.Output},
			}
			return renderTable(cmd.OutOrStdout(), []string{"Chave", "Valor"}, rows)
		},
	}
}
