package reconciler

// Reconcile annotates every current record against the reference dataset.
//
// Pendente is "Sim" when a reference record shares the key value and "Não"
// otherwise. Responsável is taken from the matching reference record when it
// is non-empty, then from the current record itself, and is empty when
// neither carries one. When the reference holds the same key more than once
// the last occurrence wins. Records present only in the reference are not
// part of the output. Inputs are never modified; every output record is a
// fresh copy.
func Reconcile(current, reference Dataset, key string) Dataset {
	lookup := referenceIndex(reference, key)
	out := make(Dataset, 0, len(current))
	for _, rec := range current {
		ref, found := lookup[keyValue(rec, key)]
		annotated := rec.Clone()
		if found {
			annotated.Set(PendingColumn, PendingYes)
		} else {
			annotated.Set(PendingColumn, PendingNo)
		}
		annotated.Set(ResponsibleColumn, carriedResponsible(rec, ref))
		out = append(out, annotated)
	}
	return out
}

func referenceIndex(reference Dataset, key string) map[any]*Record {
	lookup := make(map[any]*Record, len(reference))
	for _, rec := range reference {
		lookup[keyValue(rec, key)] = rec
	}
	return lookup
}

// countReferenceDuplicates returns how many reference records are shadowed by
// a later record with the same key.
func countReferenceDuplicates(reference Dataset, key string) int {
	return len(reference) - len(referenceIndex(reference, key))
}

func carriedResponsible(rec, ref *Record) any {
	if ref != nil {
		if v, ok := ref.Get(ResponsibleColumn); ok && !isEmptyValue(v) {
			return v
		}
	}
	if v, ok := rec.Get(ResponsibleColumn); ok && !isEmptyValue(v) {
		return v
	}
	return ""
}
