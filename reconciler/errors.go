package reconciler

import (
	"errors"
	"fmt"
)

// Run-level failures. No output is produced when one of these is returned.
var (
	// ErrMissingInput indicates that a dataset is empty or absent.
	ErrMissingInput = errors.New("missing input")

	// ErrNoKeyColumn indicates that no column could be used to match records.
	ErrNoKeyColumn = errors.New("no key column")
)

// Dataset sides named in InputError.
const (
	SideReference = "reference"
	SideCurrent   = "current"
	SideBoth      = "both"
)

// InputError describes why a run could not start.
type InputError struct {
	Side string
	Err  error
}

// Error implements the error interface.
func (e *InputError) Error() string {
	switch {
	case errors.Is(e.Err, ErrMissingInput) && e.Side == SideBoth:
		return "missing input: both datasets are empty"
	case errors.Is(e.Err, ErrMissingInput):
		return fmt.Sprintf("missing input: %s dataset is empty", e.Side)
	case errors.Is(e.Err, ErrNoKeyColumn):
		return fmt.Sprintf("no key column found in %s dataset", e.Side)
	default:
		return fmt.Sprintf("%s dataset: %v", e.Side, e.Err)
	}
}

// Unwrap implements errors.Unwrap.
func (e *InputError) Unwrap() error {
	return e.Err
}

// IsMissingInput reports whether err is a missing input failure.
func IsMissingInput(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

// IsNoKeyColumn reports whether err is a key column failure.
func IsNoKeyColumn(err error) bool {
	return errors.Is(err, ErrNoKeyColumn)
}

// UserMessage returns the message shown to end users for err.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsMissingInput(err):
		return "Por favor, carregue ambas as planilhas"
	case IsNoKeyColumn(err):
		return "Coluna de número do processo não encontrada"
	default:
		return "Erro durante o processamento: " + err.Error()
	}
}
