package reconciler

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadDatasetCSVHeaders(t *testing.T) {
	data := "\ufeffProcesso,,Processo,\n100,a,b,\n,,,\n200,,c,d\n"

	ds, err := ReadDataset("entrada.csv", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, ds, 2)

	assert.Equal(t, []string{"Processo", "__EMPTY", "Processo_1", "__EMPTY_1"}, ds[0].Columns())
	assert.Equal(t, "100", ds[0].String("Processo"))
	assert.Equal(t, "b", ds[0].String("Processo_1"))

	v, ok := ds[0].Get("__EMPTY_1")
	assert.True(t, ok)
	assert.Nil(t, v)

	v, ok = ds[1].Get("__EMPTY")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, "d", ds[1].String("__EMPTY_1"))
}

func TestReadDatasetRowsWiderThanHeader(t *testing.T) {
	ds, err := ReadDataset("largo.csv", strings.NewReader("Processo,Texto\n1,a\n2,b,extra,mais\n"))
	require.NoError(t, err)
	require.Len(t, ds, 2)

	assert.Equal(t, []string{"Processo", "Texto", "__EMPTY", "__EMPTY_1"}, ds[0].Columns())
	v, ok := ds[0].Get("__EMPTY")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, "extra", ds[1].String("__EMPTY"))
	assert.Equal(t, "mais", ds[1].String("__EMPTY_1"))
}

func TestReadWorkbookRowsWiderThanHeader(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Processo", "Texto"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"1", "a", "solto"}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	ds, err := ReadDataset("largo.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, []string{"Processo", "Texto", "__EMPTY"}, ds[0].Columns())
	assert.Equal(t, "solto", ds[0].String("__EMPTY"))
}

func TestReadDatasetShortRows(t *testing.T) {
	ds, err := ReadDataset("x.tsv", strings.NewReader("Processo\tTexto L=100\n7\n"))
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.True(t, ds[0].Has(DefaultTextColumn))
	assert.Equal(t, "7", ds[0].String("Processo"))
}

func TestReadDatasetEmpty(t *testing.T) {
	ds, err := ReadDataset("vazio.csv", strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("Planilha.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = FormatFromPath("antiga.xls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".xlsx")

	_, err = FormatFromPath("notas.txt")
	assert.Error(t, err)
}

func TestWorkbookRoundTrip(t *testing.T) {
	ds := Dataset{
		rec("Processo", "100", "Texto L=100", "caso sul", PendingColumn, PendingYes),
		rec("Processo", "200", ResponsibleColumn, "Bruno"),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, FormatXLSX, ds, ""))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())

	got, err := ReadDataset("saida.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Processo", "Texto L=100", PendingColumn, ResponsibleColumn}, got[0].Columns())
	assert.Equal(t, "caso sul", got[0].String("Texto L=100"))
	assert.Equal(t, "Bruno", got[1].String(ResponsibleColumn))

	v, ok := got[1].Get(PendingColumn)
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestWriteDelimitedUsesColumnUnion(t *testing.T) {
	ds := Dataset{rec("a", "1"), rec("b", 2.5, "a", "3")}
	var buf bytes.Buffer
	require.NoError(t, WriteDataset(&buf, FormatCSV, ds, ""))
	assert.Equal(t, "a,b\n1,\n3,2.5\n", buf.String())
}

func TestWriteDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "resultado.csv")
	require.NoError(t, WriteDatasetFile(path, Dataset{rec("Processo", "1")}, ""))

	got, err := ReadDatasetFile(path)
	require.NoError(t, err)
	assert.Equal(t, []any{"1"}, keysOf(got, "Processo"))
}

func TestOutputFileName(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	late := time.Date(2024, 3, 10, 22, 30, 0, 0, brt)

	assert.Equal(t, "planilha_processada_2024-03-11.xlsx", OutputFileName(late, ""))
	assert.Equal(t, "planilha_processada_2024-03-11.csv", OutputFileName(late, FormatCSV))
}

func TestInspectColumns(t *testing.T) {
	info := InspectColumns(Dataset{rec("Data", "x", "Nº Processo", "1"), rec("Extra", "y")}, nil)
	assert.Equal(t, "Nº Processo", info.KeyColumn)
	assert.Equal(t, []string{"Data", "Nº Processo", "Extra"}, info.Columns)
}
