package reconciler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name of the single sheet in exported workbooks.
const DefaultSheetName = "Dados Processados"

const (
	// FormatXLSX selects an Excel workbook.
	FormatXLSX = "xlsx"
	// FormatCSV selects comma separated values.
	FormatCSV = "csv"
	// FormatTSV selects tab separated values.
	FormatTSV = "tsv"
)

const emptyHeader = "__EMPTY"

// ColumnInfo describes the columns of a dataset and the inferred key column.
type ColumnInfo struct {
	Columns   []string
	KeyColumn string
}

// InspectColumns returns the columns of ds and the key column suggested by
// InferKeyColumn.
func InspectColumns(ds Dataset, tokens []string) ColumnInfo {
	info := ColumnInfo{Columns: ds.Columns()}
	info.KeyColumn, _ = InferKeyColumn(ds, tokens)
	return info
}

// FormatFromPath maps a file extension to one of the supported formats.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".xls":
		return "", fmt.Errorf("legacy .xls workbooks are not supported, save %s as .xlsx", filepath.Base(path))
	default:
		return "", fmt.Errorf("unsupported file type %q", ext)
	}
}

// ReadDatasetFile reads the first sheet of a workbook, or a CSV/TSV file, into
// a dataset.
func ReadDatasetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	return ReadDataset(filepath.Base(path), f)
}

// ReadDataset parses r according to the extension of name. The first row holds
// the column names; fully blank rows are skipped and empty cells become nil.
func ReadDataset(name string, r io.Reader) (Dataset, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	switch format {
	case FormatXLSX:
		rows, err = readWorkbookRows(r)
	case FormatTSV:
		rows, err = readDelimitedRows(r, '\t')
	default:
		rows, err = readDelimitedRows(r, ',')
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return rowsToDataset(rows), nil
}

func readWorkbookRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readDelimitedRows(r io.Reader, comma rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

func rowsToDataset(rows [][]string) Dataset {
	if len(rows) == 0 {
		return Dataset{}
	}
	header := uniqueHeaders(widenHeader(rows))
	ds := make(Dataset, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rec := &Record{vals: make(map[string]any, len(header))}
		for i, col := range header {
			var v any
			if i < len(row) && row[i] != "" {
				v = row[i]
			}
			rec.Set(col, v)
		}
		ds = append(ds, rec)
	}
	return ds
}

// widenHeader pads the header row with empty names up to the longest data
// row so cells past the last titled column are kept as __EMPTY columns.
func widenHeader(rows [][]string) []string {
	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) > width && !isBlankRow(row) {
			width = len(row)
		}
	}
	header := make([]string, width)
	copy(header, rows[0])
	return header
}

// uniqueHeaders names empty header cells __EMPTY, __EMPTY_1, ... and suffixes
// repeated names with _1, _2, ... so every column name is distinct.
func uniqueHeaders(row []string) []string {
	used := make(map[string]struct{}, len(row))
	next := make(map[string]int, len(row))
	out := make([]string, len(row))
	for i, cell := range row {
		base := cleanCell(cell)
		if base == "" {
			base = emptyHeader
		}
		name := base
		n := next[base]
		for {
			if n > 0 {
				name = fmt.Sprintf("%s_%d", base, n)
			}
			if _, taken := used[name]; !taken {
				break
			}
			n++
		}
		next[base] = n + 1
		used[name] = struct{}{}
		out[i] = name
	}
	return out
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

// OutputFileName returns the export file name for the given moment, embedding
// the UTC date: planilha_processada_2006-01-02.xlsx.
func OutputFileName(now time.Time, format string) string {
	if format == "" {
		format = FormatXLSX
	}
	return fmt.Sprintf("planilha_processada_%s.%s", now.UTC().Format("2006-01-02"), format)
}

// WriteDatasetFile writes ds to path in the format implied by its extension.
func WriteDatasetFile(path string, ds Dataset, sheet string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := WriteDataset(f, format, ds, sheet); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteDataset encodes ds as one sheet. The header is the union of record
// columns in first-appearance order.
func WriteDataset(w io.Writer, format string, ds Dataset, sheet string) error {
	switch format {
	case FormatXLSX:
		return writeWorkbook(w, ds, sheet)
	case FormatCSV:
		return writeDelimited(w, ds, ',')
	case FormatTSV:
		return writeDelimited(w, ds, '\t')
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func writeWorkbook(w io.Writer, ds Dataset, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheetName
	}
	f := excelize.NewFile()
	defer f.Close()
	if first := f.GetSheetName(0); first != sheet {
		if err := f.SetSheetName(first, sheet); err != nil {
			return fmt.Errorf("name sheet: %w", err)
		}
	}
	cols := ds.Columns()
	header := make([]any, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range ds {
		row := make([]any, len(cols))
		for j, col := range cols {
			v, _ := rec.Get(col)
			if v == nil {
				v = ""
			}
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeDelimited(w io.Writer, ds Dataset, comma rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma
	cols := ds.Columns()
	if err := writer.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range ds {
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = rec.String(col)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
