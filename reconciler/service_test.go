package reconciler

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DictionaryPath = filepath.Join(t.TempDir(), "responsaveis.yaml")
	cfg.TextColumn = "texto"
	return cfg
}

func TestNewServiceWritesDefaultDictionary(t *testing.T) {
	cfg := testConfig(t)

	svc, err := NewService(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultDictionary().Entries(), svc.Dictionary().Entries())

	_, err = os.Stat(cfg.DictionaryPath)
	assert.NoError(t, err)
}

func TestServiceProcessAndExport(t *testing.T) {
	current, reference, dict := exampleInputs()
	svc := NewServiceWithDictionary(testConfig(t), dict, zerolog.Nop())

	res, err := svc.Process(current, reference)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.Processed)

	path := filepath.Join(t.TempDir(), OutputFileName(fixedNow, FormatXLSX))
	require.NoError(t, svc.Export(path, res))

	got, err := ReadDatasetFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bruno", got[1].String(ResponsibleColumn))
}

func TestServiceProcessError(t *testing.T) {
	svc := NewServiceWithDictionary(testConfig(t), nil, zerolog.Nop())
	res, err := svc.Process(nil, nil)
	assert.Nil(t, res)
	assert.True(t, IsMissingInput(err))

	assert.ErrorIs(t, svc.Export(filepath.Join(t.TempDir(), "x.xlsx"), nil), ErrMissingInput)
}

func TestServiceUpdateConfigReloadsDictionary(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewService(cfg, zerolog.Nop())
	require.NoError(t, err)

	other := filepath.Join(t.TempDir(), "outro.yaml")
	require.NoError(t, SaveDictionary(other, NewDictionary(DictionaryEntry{Responsible: "Ana", Keywords: []string{"sul"}})))

	cfg.DictionaryPath = other
	_, err = svc.UpdateConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Dictionary().Len())
	assert.Equal(t, other, svc.Config().DictionaryPath)

	cfg.DictionaryPath = filepath.Join(t.TempDir(), "inexistente.yaml")
	_, err = svc.UpdateConfig(cfg)
	assert.Error(t, err)
	assert.Equal(t, 1, svc.Dictionary().Len())
}

func TestServiceUpdateConfigFailureKeepsPreviousState(t *testing.T) {
	cfg := testConfig(t)
	svc, err := NewService(cfg, zerolog.Nop())
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "inexistente.yaml")
	next := cfg
	next.DictionaryPath = missing
	next.TextColumn = "outro"

	stored, err := svc.UpdateConfig(next)
	require.Error(t, err)
	assert.Equal(t, cfg.DictionaryPath, stored.DictionaryPath)
	assert.Equal(t, cfg.DictionaryPath, svc.Config().DictionaryPath)
	assert.Equal(t, "texto", svc.Config().TextColumn)
	assert.Equal(t, DefaultDictionary().Entries(), svc.Dictionary().Entries())

	// a retry must try the load again instead of treating the path as current
	_, err = svc.UpdateConfig(next)
	assert.Error(t, err)

	require.NoError(t, SaveDictionary(missing, NewDictionary(DictionaryEntry{Responsible: "Ana", Keywords: []string{"sul"}})))
	stored, err = svc.UpdateConfig(next)
	require.NoError(t, err)
	assert.Equal(t, missing, stored.DictionaryPath)
	assert.Equal(t, "outro", svc.Config().TextColumn)
	assert.Equal(t, 1, svc.Dictionary().Len())
}

func TestServiceExportTo(t *testing.T) {
	current, reference, dict := exampleInputs()
	svc := NewServiceWithDictionary(testConfig(t), dict, zerolog.Nop())
	res, err := svc.Process(current, reference)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportTo(&buf, "resultado.csv", FormatCSV, res))
	assert.Equal(t, "proc,texto,Pendente,Responsável\n100,caso sul,Sim,Ana\n200,caso norte,Não,Bruno\n", buf.String())
}
