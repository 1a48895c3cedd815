package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"yashubustudio/reconciler/reconciler"
)

func (c *cli) newColumnsCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "List the columns of a spreadsheet and the inferred key column",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := reconciler.ReadDatasetFile(path)
			if err != nil {
				return err
			}
			info := reconciler.InspectColumns(ds, c.cfg.KeyColumnTokens)
			rows := make([][]string, 0, len(info.Columns))
			for i, col := range info.Columns {
				mark := ""
				switch col {
				case info.KeyColumn:
					mark = "chave"
				case c.cfg.TextColumn:
					mark = "texto"
				}
				rows = append(rows, []string{fmt.Sprint(i + 1), col, mark})
			}
			out := cmd.OutOrStdout()
			if err := renderTable(out, []string{"#", "Coluna", "Uso"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d registros\n", len(ds))
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "spreadsheet to inspect (xlsx, csv or tsv)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
