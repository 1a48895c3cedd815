package reconciler

import "strings"

const (
	// PreviewTextRunes is how many runes of the free-text column are shown
	// before the value is cut with an ellipsis.
	PreviewTextRunes = 51
	// Unassigned is shown in place of an empty Responsável.
	Unassigned = "Não definido"
)

// DisplayCell renders one cell for on-screen tables. Exports always carry the
// full value; only previews apply these rules.
func DisplayCell(rec *Record, col, textColumn string) string {
	val := rec.String(col)
	switch col {
	case ResponsibleColumn:
		if strings.TrimSpace(val) == "" {
			return Unassigned
		}
	case textColumn:
		return TruncateText(val, PreviewTextRunes)
	}
	return val
}

// TruncateText cuts s to limit runes and appends "..." when it was longer.
func TruncateText(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
