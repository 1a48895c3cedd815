package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"yashubustudio/reconciler/reconciler"
)

func (c *cli) newDictionaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Manage the keyword dictionary",
	}
	cmd.AddCommand(c.newDictionaryInitCmd(), c.newDictionaryShowCmd())
	return cmd
}

func (c *cli) newDictionaryInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in dictionary to the configured path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := c.cfg.DictionaryPath
			if force {
				if err := reconciler.SaveDictionary(path, reconciler.DefaultDictionary()); err != nil {
					return err
				}
				c.logger.Info().Str("path", path).Msg("dictionary overwritten with defaults")
				fmt.Fprintf(cmd.OutOrStdout(), "Dicionário padrão gravado em %s\n", path)
				return nil
			}
			created, err := reconciler.EnsureDictionaryFile(path, reconciler.DefaultDictionary())
			if err != nil {
				return err
			}
			if !created {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dicionário padrão gravado em %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing dictionary file")
	return cmd
}

func (c *cli) newDictionaryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the dictionary in precedence order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := c.cfg.DictionaryPath
			dict, err := reconciler.LoadDictionary(path)
			if errors.Is(err, os.ErrNotExist) {
				c.logger.Warn().Str("path", path).Msg("dictionary file not found, showing built-in defaults")
				dict, err = reconciler.DefaultDictionary(), nil
			}
			if err != nil {
				return err
			}
			rows := make([][]string, 0, dict.Len())
			for i, e := range dict.Entries() {
				rows = append(rows, []string{fmt.Sprint(i + 1), e.Responsible, strings.Join(e.Keywords, ", ")})
			}
			return renderTable(cmd.OutOrStdout(), []string{"#", "Responsável", "Palavras-chave"}, rows)
		},
	}
}
