package app

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2/data/binding"
)

// logPane is an io.Writer that keeps the last limit log lines in a string
// binding shown by the log panel.
type logPane struct {
	mu      sync.Mutex
	lines   []string
	limit   int
	binding binding.String
}

func newLogPane(b binding.String, limit int) *logPane {
	return &logPane{binding: b, limit: limit}
}

func (l *logPane) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	text := strings.ReplaceAll(string(p), "\r\n", "\n")
	for _, part := range strings.Split(text, "\n") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l.lines = append(l.lines, part)
	}
	if l.limit > 0 && len(l.lines) > l.limit {
		l.lines = l.lines[len(l.lines)-l.limit:]
	}
	_ = l.binding.Set(strings.Join(l.lines, "\n"))
	return len(p), nil
}
