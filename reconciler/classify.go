package reconciler

import "strings"

type compiledEntry struct {
	responsible string
	keywords    []string
}

// Classifier assigns a responsible party to records from a free-text column
// using whole-word keyword matches.
type Classifier struct {
	textColumn string
	entries    []compiledEntry
}

// NewClassifier compiles dict for matching against textColumn. Keywords that
// normalize to nothing are dropped. An empty textColumn selects
// DefaultTextColumn.
func NewClassifier(dict *Dictionary, textColumn string) *Classifier {
	if strings.TrimSpace(textColumn) == "" {
		textColumn = DefaultTextColumn
	}
	c := &Classifier{textColumn: textColumn}
	for _, e := range dict.Entries() {
		compiled := compiledEntry{responsible: e.Responsible}
		for _, kw := range e.Keywords {
			normed := NormalizeText(kw)
			if strings.TrimSpace(normed) == "" {
				continue
			}
			compiled.keywords = append(compiled.keywords, normed)
		}
		c.entries = append(c.entries, compiled)
	}
	return c
}

// TextColumn returns the column inspected by the classifier.
func (c *Classifier) TextColumn() string {
	return c.textColumn
}

// Match returns the first responsible party whose keyword occurs as a whole
// word in text, scanning entries then keywords in dictionary order.
func (c *Classifier) Match(text any) (string, bool) {
	normed := NormalizeValue(text)
	if normed == "" {
		return "", false
	}
	for _, e := range c.entries {
		for _, kw := range e.keywords {
			if ContainsWord(normed, kw) {
				return e.responsible, true
			}
		}
	}
	return "", false
}

// Classify returns ds with a responsible party filled in where one was empty
// and the text column matched, plus the number of records it assigned.
// Records that already have a responsible party, or lack text, are kept as is.
func (c *Classifier) Classify(ds Dataset) (Dataset, int) {
	out := make(Dataset, 0, len(ds))
	assigned := 0
	for _, rec := range ds {
		if v, ok := rec.Get(ResponsibleColumn); ok && !isEmptyValue(v) {
			out = append(out, rec)
			continue
		}
		text, ok := rec.Get(c.textColumn)
		if !ok || isEmptyValue(text) {
			out = append(out, rec)
			continue
		}
		responsible, found := c.Match(text)
		if !found {
			out = append(out, rec)
			continue
		}
		classified := rec.Clone()
		classified.Set(ResponsibleColumn, responsible)
		out = append(out, classified)
		assigned++
	}
	return out, assigned
}
