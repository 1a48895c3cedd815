package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"yashubustudio/reconciler/reconciler"
)

type processOptions struct {
	referencePath string
	currentPath   string
	outputPath    string
	format        string
	preview       int
	stdout        bool
}

func (c *cli) newProcessCmd() *cobra.Command {
	var opts processOptions
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Reconcile the current spreadsheet against the reference one",
		Example: `  reconciler-cli process --reference anterior.xlsx --current atual.xlsx
  reconciler-cli process --reference a.csv --current b.csv --format csv --preview 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runProcess(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.referencePath, "reference", "", "reference spreadsheet (xlsx, csv or tsv)")
	f.StringVar(&opts.currentPath, "current", "", "current spreadsheet (xlsx, csv or tsv)")
	f.StringVar(&opts.outputPath, "output", "", "output file (default uses --output-dir and a dated name)")
	f.String("output-dir", "", "directory for the dated output file (default from config)")
	f.StringVar(&opts.format, "format", reconciler.FormatXLSX, "output format when --output is omitted: xlsx, csv or tsv")
	f.IntVar(&opts.preview, "preview", 0, "print the first N processed rows")
	f.BoolVar(&opts.stdout, "stdout", false, "write the processed rows as CSV to STDOUT instead of a file")
	_ = cmd.MarkFlagRequired("reference")
	_ = cmd.MarkFlagRequired("current")
	if err := c.v.BindPFlag("output-dir", f.Lookup("output-dir")); err != nil {
		panic(fmt.Sprintf("bind output-dir flag: %v", err))
	}
	return cmd
}

func (c *cli) runProcess(cmd *cobra.Command, opts processOptions) error {
	reference, err := reconciler.ReadDatasetFile(strings.TrimSpace(opts.referencePath))
	if err != nil {
		return fmt.Errorf("read reference: %w", err)
	}
	current, err := reconciler.ReadDatasetFile(strings.TrimSpace(opts.currentPath))
	if err != nil {
		return fmt.Errorf("read current: %w", err)
	}
	c.logger.Info().
		Int("reference_rows", len(reference)).
		Int("current_rows", len(current)).
		Msg("spreadsheets loaded")

	svc, err := reconciler.NewService(c.cfg, c.logger)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}
	res, err := svc.Process(current, reference)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.stdout {
		return reconciler.WriteDataset(out, reconciler.FormatCSV, res.Records, "")
	}

	path, err := resolveOutputPath(opts.outputPath, c.cfg.OutputDir, opts.format, time.Now())
	if err != nil {
		return err
	}
	if err := svc.Export(path, res); err != nil {
		return err
	}

	if err := printStats(out, res); err != nil {
		return err
	}
	if opts.preview > 0 {
		fmt.Fprintln(out)
		if err := printPreview(out, res, c.cfg.TextColumn, opts.preview); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "\nResultado salvo em %s\n", path)
	return nil
}

// resolveOutputPath returns the absolute export path, creating its directory.
// Without an explicit path the file goes to dir under the dated default name.
func resolveOutputPath(path, dir, format string, now time.Time) (string, error) {
	if path == "" {
		if dir == "" {
			dir = reconciler.DefaultConfig().OutputDir
		}
		switch format {
		case reconciler.FormatXLSX, reconciler.FormatCSV, reconciler.FormatTSV:
		default:
			return "", fmt.Errorf("unsupported output format %q", format)
		}
		path = filepath.Join(dir, reconciler.OutputFileName(now, format))
	}
	if _, err := reconciler.FormatFromPath(path); err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return abs, nil
}

func printPreview(w io.Writer, res *reconciler.Result, textColumn string, limit int) error {
	if res == nil || len(res.Records) == 0 {
		return nil
	}
	if limit > len(res.Records) {
		limit = len(res.Records)
	}
	cols := res.Records.Columns()
	rows := make([][]string, 0, limit)
	for _, rec := range res.Records[:limit] {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = reconciler.DisplayCell(rec, col, textColumn)
		}
		rows = append(rows, row)
	}
	fmt.Fprintf(w, "Prévia (%d de %d registros)\n", limit, len(res.Records))
	return renderTable(w, cols, rows)
}
