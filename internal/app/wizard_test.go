package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yashubustudio/reconciler/reconciler"
)

func dataset(keys ...string) reconciler.Dataset {
	ds := make(reconciler.Dataset, 0, len(keys))
	for _, k := range keys {
		ds = append(ds, reconciler.NewRecord([]string{"Processo"}, []any{k}))
	}
	return ds
}

func TestSessionLoadKeepsOtherSide(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StepUpload, s.State().Step)

	step, err := s.Load(reconciler.SideReference, "antiga.xlsx", dataset("1"))
	require.NoError(t, err)
	assert.Equal(t, StepUpload, step)

	step, err = s.Load(reconciler.SideCurrent, "atual.xlsx", dataset("1", "2"))
	require.NoError(t, err)
	assert.Equal(t, StepReady, step)

	step, err = s.Load(reconciler.SideReference, "outra.xlsx", dataset("3"))
	require.NoError(t, err)
	assert.Equal(t, StepReady, step)

	st := s.State()
	assert.Equal(t, "outra.xlsx", st.ReferenceName)
	assert.Equal(t, "atual.xlsx", st.CurrentName)
	assert.Equal(t, 2, st.CurrentRows)

	_, err = s.Load("lateral", "x.xlsx", dataset("1"))
	assert.Error(t, err)
}

func TestSessionEmptyUploadIsNotReady(t *testing.T) {
	s := NewSession()
	_, _ = s.Load(reconciler.SideReference, "antiga.xlsx", dataset("1"))
	step, err := s.Load(reconciler.SideCurrent, "vazia.xlsx", nil)
	require.NoError(t, err)
	assert.Equal(t, StepUpload, step)

	_, _, err = s.Begin()
	var inputErr *reconciler.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, reconciler.SideCurrent, inputErr.Side)
	assert.Equal(t, "Por favor, carregue ambas as planilhas", reconciler.UserMessage(err))
}

func TestSessionProcess(t *testing.T) {
	s := NewSession()
	_, _ = s.Load(reconciler.SideReference, "antiga.xlsx", dataset("1"))
	_, _ = s.Load(reconciler.SideCurrent, "atual.xlsx", dataset("1", "2"))

	want := &reconciler.Result{KeyColumn: "Processo"}
	var seen SessionState
	res, err := s.Process(ProcessorFunc(func(current, reference reconciler.Dataset) (*reconciler.Result, error) {
		seen = s.State()
		assert.Len(t, current, 2)
		assert.Len(t, reference, 1)
		return want, nil
	}))
	require.NoError(t, err)
	assert.Same(t, want, res)
	assert.Equal(t, StepProcessing, seen.Step)

	st := s.State()
	assert.Equal(t, StepResults, st.Step)
	assert.Same(t, want, st.Result)
}

func TestSessionProcessFailureReturnsToReady(t *testing.T) {
	s := NewSession()
	_, _ = s.Load(reconciler.SideReference, "antiga.xlsx", dataset("1"))
	_, _ = s.Load(reconciler.SideCurrent, "atual.xlsx", dataset("2"))

	boom := &reconciler.InputError{Side: reconciler.SideCurrent, Err: reconciler.ErrNoKeyColumn}
	_, err := s.Process(ProcessorFunc(func(_, _ reconciler.Dataset) (*reconciler.Result, error) {
		return nil, boom
	}))
	require.ErrorIs(t, err, reconciler.ErrNoKeyColumn)

	st := s.State()
	assert.Equal(t, StepReady, st.Step)
	assert.Nil(t, st.Result)
	assert.ErrorIs(t, st.Err, reconciler.ErrNoKeyColumn)
	assert.Equal(t, "atual.xlsx", st.CurrentName)
}

func TestSessionRejectsLoadWhileProcessing(t *testing.T) {
	s := NewSession()
	_, _ = s.Load(reconciler.SideReference, "antiga.xlsx", dataset("1"))
	_, _ = s.Load(reconciler.SideCurrent, "atual.xlsx", dataset("2"))

	_, _, err := s.Begin()
	require.NoError(t, err)
	_, err = s.Load(reconciler.SideCurrent, "nova.xlsx", dataset("9"))
	assert.Error(t, err)
	_, _, err = s.Begin()
	assert.Error(t, err)

	assert.Equal(t, StepResults, s.Finish(&reconciler.Result{}, nil))
	assert.Equal(t, StepResults, s.Finish(nil, errors.New("late")))
}

func TestSessionReset(t *testing.T) {
	s := NewSession()
	_, _ = s.Load(reconciler.SideReference, "antiga.xlsx", dataset("1"))
	_, _ = s.Load(reconciler.SideCurrent, "atual.xlsx", dataset("1"))
	_, err := s.Process(ProcessorFunc(func(_, _ reconciler.Dataset) (*reconciler.Result, error) {
		return &reconciler.Result{}, nil
	}))
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, SessionState{Step: StepUpload}, s.State())
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "Resultados", StepResults.String())
	assert.Equal(t, "Step(9)", Step(9).String())
}
