package reconciler

import "time"

// rec builds a record from alternating column/value pairs.
func rec(pairs ...any) *Record {
	r := &Record{}
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i].(string), pairs[i+1])
	}
	return r
}

var fixedNow = time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

func keysOf(ds Dataset, key string) []any {
	out := make([]any, len(ds))
	for i, r := range ds {
		out[i], _ = r.Get(key)
	}
	return out
}
