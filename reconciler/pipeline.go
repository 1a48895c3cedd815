package reconciler

// PipelineOptions configures one run of the pipeline.
type PipelineOptions struct {
	// KeyColumnTokens overrides the tokens used to infer the key column.
	KeyColumnTokens []string
	// TextColumn is the free-text column used for classification.
	TextColumn string
	// Dictionary drives classification. A nil dictionary classifies nothing.
	Dictionary *Dictionary
}

// Run deduplicates current, annotates it against reference and classifies the
// records left without a responsible party. It fails before touching any data
// when a dataset is empty or no key column can be found.
func Run(current, reference Dataset, opts PipelineOptions) (*Result, error) {
	switch {
	case len(current) == 0 && len(reference) == 0:
		return nil, &InputError{Side: SideBoth, Err: ErrMissingInput}
	case len(current) == 0:
		return nil, &InputError{Side: SideCurrent, Err: ErrMissingInput}
	case len(reference) == 0:
		return nil, &InputError{Side: SideReference, Err: ErrMissingInput}
	}
	key, ok := InferKeyColumn(current, opts.KeyColumnTokens)
	if !ok {
		return nil, &InputError{Side: SideCurrent, Err: ErrNoKeyColumn}
	}

	unique, removed := Deduplicate(current, key)
	reconciled := Reconcile(unique, reference, key)
	carried := countAssigned(reconciled)
	final, classified := NewClassifier(opts.Dictionary, opts.TextColumn).Classify(reconciled)

	stats := Stats{
		DuplicatesRemoved: removed,
		Processed:         len(final),
		Carried:           carried,
		Classified:        classified,
	}
	for _, rec := range final {
		if v, _ := rec.Get(PendingColumn); v == PendingYes {
			stats.Pending++
		}
	}
	stats.Unassigned = stats.Processed - countAssigned(final)
	return &Result{Records: final, KeyColumn: key, Stats: stats}, nil
}

func countAssigned(ds Dataset) int {
	n := 0
	for _, rec := range ds {
		if v, ok := rec.Get(ResponsibleColumn); ok && !isEmptyValue(v) {
			n++
		}
	}
	return n
}
