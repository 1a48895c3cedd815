package reconciler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleInputs() (current, reference Dataset, dict *Dictionary) {
	reference = Dataset{rec("proc", "100", ResponsibleColumn, "Ana")}
	current = Dataset{
		rec("proc", "100", "texto", "caso sul"),
		rec("proc", "100", "texto", "caso sul"),
		rec("proc", "200", "texto", "caso norte"),
	}
	dict = NewDictionary(
		DictionaryEntry{Responsible: "Ana", Keywords: []string{"sul"}},
		DictionaryEntry{Responsible: "Bruno", Keywords: []string{"norte"}},
	)
	return current, reference, dict
}

func TestRun(t *testing.T) {
	current, reference, dict := exampleInputs()

	res, err := Run(current, reference, PipelineOptions{TextColumn: "texto", Dictionary: dict})
	require.NoError(t, err)

	assert.Equal(t, "proc", res.KeyColumn)
	assert.Equal(t, Stats{
		DuplicatesRemoved: 1,
		Processed:         2,
		Pending:           1,
		Carried:           1,
		Classified:        1,
		Unassigned:        0,
	}, res.Stats)

	require.Len(t, res.Records, 2)
	assert.Equal(t, PendingYes, res.Records[0].String(PendingColumn))
	assert.Equal(t, "Ana", res.Records[0].String(ResponsibleColumn))
	assert.Equal(t, PendingNo, res.Records[1].String(PendingColumn))
	assert.Equal(t, "Bruno", res.Records[1].String(ResponsibleColumn))

	assert.Len(t, current, 3)
	assert.False(t, current[0].Has(PendingColumn))
}

func TestRunWithoutDictionary(t *testing.T) {
	current, reference, _ := exampleInputs()

	res, err := Run(current, reference, PipelineOptions{TextColumn: "texto"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stats.Classified)
	assert.Equal(t, 1, res.Stats.Unassigned)
	assert.Equal(t, "", res.Records[1].String(ResponsibleColumn))
}

func TestRunMissingInput(t *testing.T) {
	current, reference, _ := exampleInputs()
	tests := []struct {
		name      string
		current   Dataset
		reference Dataset
		side      string
	}{
		{"both empty", nil, Dataset{}, SideBoth},
		{"current empty", nil, reference, SideCurrent},
		{"reference empty", current, nil, SideReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(tt.current, tt.reference, PipelineOptions{})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, IsMissingInput(err))

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.side, inputErr.Side)
		})
	}
}

func TestRunNoKeyColumn(t *testing.T) {
	_, reference, _ := exampleInputs()
	res, err := Run(Dataset{NewRecord(nil, nil)}, reference, PipelineOptions{})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, IsNoKeyColumn(err))
	assert.False(t, IsMissingInput(err))
}

func TestRunPendingCountMatchesRecords(t *testing.T) {
	reference := Dataset{rec("Processo", "1"), rec("Processo", "3"), rec("Processo", "3")}
	current := Dataset{rec("Processo", "1"), rec("Processo", "2"), rec("Processo", "3"), rec("Processo", "2")}

	res, err := Run(current, reference, PipelineOptions{})
	require.NoError(t, err)
	assert.Equal(t, len(current)-res.Stats.DuplicatesRemoved, res.Stats.Processed)

	pending := 0
	for _, r := range res.Records {
		if r.String(PendingColumn) == PendingYes {
			pending++
		}
	}
	assert.Equal(t, 2, pending)
	assert.Equal(t, pending, res.Stats.Pending)
}
