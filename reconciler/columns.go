package reconciler

import "strings"

func defaultKeyColumnTokens() []string {
	return []string{"processo", "number", "numero"}
}

// DefaultKeyColumnTokens returns the built-in tokens that identify the process
// number column.
func DefaultKeyColumnTokens() []string {
	return cloneStrings(defaultKeyColumnTokens())
}

// InferKeyColumn picks the column used to match records across datasets.
// Column names come from the first record only. The first column whose
// lowercased name contains one of tokens wins; otherwise the first column is
// used. A nil tokens slice falls back to the defaults. The boolean is false
// only when the dataset offers no column at all.
func InferKeyColumn(ds Dataset, tokens []string) (string, bool) {
	if len(ds) == 0 || ds[0].Len() == 0 {
		return "", false
	}
	if tokens == nil {
		tokens = defaultKeyColumnTokens()
	}
	cols := ds[0].Columns()
	for _, col := range cols {
		lower := strings.ToLower(col)
		for _, token := range tokens {
			token = strings.ToLower(strings.TrimSpace(token))
			if token == "" {
				continue
			}
			if strings.Contains(lower, token) {
				return col, true
			}
		}
	}
	return cols[0], true
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
