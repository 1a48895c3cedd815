package reconciler

// Deduplicate keeps the first record seen for each value of key, preserving
// input order, and reports how many records were dropped. Missing, nil and
// empty-string keys all count as the same empty key.
func Deduplicate(ds Dataset, key string) (Dataset, int) {
	seen := make(map[any]struct{}, len(ds))
	out := make(Dataset, 0, len(ds))
	for _, rec := range ds {
		k := keyValue(rec, key)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, rec)
	}
	return out, len(ds) - len(out)
}

// keyValue returns the comparable lookup key of rec. Values that cannot be
// used as map keys are compared through their formatted text.
func keyValue(rec *Record, key string) any {
	v, _ := rec.Get(key)
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if val == "" {
			return nil
		}
		return val
	case float64, float32, int, int64, bool:
		return val
	default:
		return FormatValue(val)
	}
}
