package app

import (
	"errors"
	"fmt"
	"sync"

	"yashubustudio/reconciler/reconciler"
)

// Step is a stage of the processing wizard.
type Step int

const (
	StepUpload Step = iota
	StepReady
	StepProcessing
	StepResults
)

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "Upload das Planilhas"
	case StepReady:
		return "Pronto para Processar"
	case StepProcessing:
		return "Processamento"
	case StepResults:
		return "Resultados"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Processor runs the pipeline for the wizard.
type Processor interface {
	Process(current, reference reconciler.Dataset) (*reconciler.Result, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(current, reference reconciler.Dataset) (*reconciler.Result, error)

// Process calls f.
func (f ProcessorFunc) Process(current, reference reconciler.Dataset) (*reconciler.Result, error) {
	return f(current, reference)
}

type upload struct {
	name    string
	records reconciler.Dataset
}

// Session holds the wizard state: the two uploaded spreadsheets, the current
// step and the last result or error. It is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	step      Step
	reference *upload
	current   *upload
	result    *reconciler.Result
	err       error
}

// SessionState is a point-in-time copy of a Session.
type SessionState struct {
	Step          Step
	ReferenceName string
	ReferenceRows int
	CurrentName   string
	CurrentRows   int
	Result        *reconciler.Result
	Err           error
}

// NewSession returns a session waiting for uploads.
func NewSession() *Session {
	return &Session{step: StepUpload}
}

// State returns a snapshot of the session.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := SessionState{Step: s.step, Result: s.result, Err: s.err}
	if s.reference != nil {
		st.ReferenceName = s.reference.name
		st.ReferenceRows = len(s.reference.records)
	}
	if s.current != nil {
		st.CurrentName = s.current.name
		st.CurrentRows = len(s.current.records)
	}
	return st
}

// Load stores the spreadsheet for side (reconciler.SideReference or
// reconciler.SideCurrent), keeping the other one. Any previous result is
// discarded. The session becomes ready once both sides hold records.
func (s *Session) Load(side, name string, ds reconciler.Dataset) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepProcessing {
		return s.step, fmt.Errorf("load %s: processing in progress", side)
	}
	u := &upload{name: name, records: ds}
	switch side {
	case reconciler.SideReference:
		s.reference = u
	case reconciler.SideCurrent:
		s.current = u
	default:
		return s.step, fmt.Errorf("load: unknown side %q", side)
	}
	s.result = nil
	s.err = nil
	s.step = StepUpload
	if s.loaded(s.reference) && s.loaded(s.current) {
		s.step = StepReady
	}
	return s.step, nil
}

func (s *Session) loaded(u *upload) bool {
	return u != nil && len(u.records) > 0
}

// Begin moves a ready session to StepProcessing and returns the inputs to
// run. It fails with a reconciler.ErrMissingInput error when a side is
// missing.
func (s *Session) Begin() (current, reference reconciler.Dataset, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == StepProcessing {
		return nil, nil, errors.New("begin: processing in progress")
	}
	refOK, curOK := s.loaded(s.reference), s.loaded(s.current)
	switch {
	case !refOK && !curOK:
		return nil, nil, &reconciler.InputError{Side: reconciler.SideBoth, Err: reconciler.ErrMissingInput}
	case !refOK:
		return nil, nil, &reconciler.InputError{Side: reconciler.SideReference, Err: reconciler.ErrMissingInput}
	case !curOK:
		return nil, nil, &reconciler.InputError{Side: reconciler.SideCurrent, Err: reconciler.ErrMissingInput}
	}
	s.step = StepProcessing
	s.result = nil
	s.err = nil
	return s.current.records, s.reference.records, nil
}

// Finish records the outcome of a run started with Begin. A failed run goes
// back to StepReady with the error kept for display.
func (s *Session) Finish(res *reconciler.Result, err error) Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != StepProcessing {
		return s.step
	}
	if err != nil {
		s.err = err
		s.step = StepReady
		return s.step
	}
	s.result = res
	s.step = StepResults
	return s.step
}

// Process runs p over the loaded spreadsheets, moving through
// StepProcessing to StepResults, or back to StepReady on failure.
func (s *Session) Process(p Processor) (*reconciler.Result, error) {
	current, reference, err := s.Begin()
	if err != nil {
		return nil, err
	}
	res, err := p.Process(current, reference)
	s.Finish(res, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Reset discards uploads and results.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = StepUpload
	s.reference = nil
	s.current = nil
	s.result = nil
	s.err = nil
}
