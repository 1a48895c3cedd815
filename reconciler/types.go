package reconciler

// Columns added to every annotated record.
const (
	PendingColumn     = "Pendente"
	ResponsibleColumn = "Responsável"

	PendingYes = "Sim"
	PendingNo  = "Não"
)

// DefaultTextColumn is the free-text column inspected by the classifier.
const DefaultTextColumn = "Texto L=100"

// Record is an ordered mapping from column name to a scalar value (string,
// number, bool or nil). Column order is the order in which columns were first set.
type Record struct {
	cols []string
	vals map[string]any
}

// NewRecord builds a record from parallel column and value slices. Missing
// values are stored as nil.
func NewRecord(cols []string, vals []any) *Record {
	r := &Record{vals: make(map[string]any, len(cols))}
	for i, col := range cols {
		var v any
		if i < len(vals) {
			v = vals[i]
		}
		r.Set(col, v)
	}
	return r
}

// Get returns the value stored under col and whether the column exists.
func (r *Record) Get(col string) (any, bool) {
	if r == nil || r.vals == nil {
		return nil, false
	}
	v, ok := r.vals[col]
	return v, ok
}

// Has reports whether the record carries the column.
func (r *Record) Has(col string) bool {
	_, ok := r.Get(col)
	return ok
}

// Set stores v under col. Existing columns keep their position.
func (r *Record) Set(col string, v any) {
	if r.vals == nil {
		r.vals = make(map[string]any)
	}
	if _, ok := r.vals[col]; !ok {
		r.cols = append(r.cols, col)
	}
	r.vals[col] = v
}

// Columns returns a copy of the column names in order.
func (r *Record) Columns() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.cols))
	copy(out, r.cols)
	return out
}

// Len returns the number of columns.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.cols)
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	out := &Record{
		cols: make([]string, len(r.cols)),
		vals: make(map[string]any, len(r.vals)),
	}
	copy(out.cols, r.cols)
	for k, v := range r.vals {
		out.vals[k] = v
	}
	return out
}

// String returns the value of col formatted for display or export.
func (r *Record) String(col string) string {
	v, _ := r.Get(col)
	return FormatValue(v)
}

// Dataset is an ordered sequence of records sourced from one spreadsheet.
type Dataset []*Record

// Columns returns the union of all record columns in first-appearance order.
func (d Dataset) Columns() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, rec := range d {
		for _, col := range rec.cols {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			out = append(out, col)
		}
	}
	return out
}

// Stats summarizes one pipeline run.
type Stats struct {
	DuplicatesRemoved int `json:"duplicatesRemoved"`
	Processed         int `json:"processed"`
	Pending           int `json:"pending"`
	Carried           int `json:"carried"`
	Classified        int `json:"classified"`
	Unassigned        int `json:"unassigned"`
}

// Result is the annotated dataset produced by a run together with its statistics.
type Result struct {
	Records   Dataset `json:"-"`
	KeyColumn string  `json:"keyColumn"`
	Stats     Stats   `json:"stats"`
}
