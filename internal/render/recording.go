package render

import (
	"fmt"
	"strings"
	"sync"
)

// Entry records a single UI method call.
type Entry struct {
	Method string
	Value  string
}

// RecordedTable is a table passed to RecordingUI.Table.
type RecordedTable struct {
	Headers []string
	Rows    [][]string
}

// RecordingUI implements UI for tests. All output is captured; nothing is
// written anywhere.
type RecordingUI struct {
	mu      sync.Mutex
	entries []Entry
	tables  []RecordedTable
}

func NewRecordingUI() *RecordingUI {
	return &RecordingUI{}
}

func (r *RecordingUI) record(method, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Method: method, Value: value})
}

// Style returns the plain text of t.
func (r *RecordingUI) Style(t StyledText) string {
	return t.Text
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Table(headers []string, rows [][]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = append(r.tables, RecordedTable{Headers: headers, Rows: rows})
	r.entries = append(r.entries, Entry{Method: "Table", Value: strings.Join(headers, " | ")})
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

// Entries returns all recorded calls in order.
func (r *RecordingUI) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Tables returns every recorded table in order.
func (r *RecordingUI) Tables() []RecordedTable {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedTable, len(r.tables))
	copy(out, r.tables)
	return out
}

// Messages returns the values recorded for method.
func (r *RecordingUI) Messages(method string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

// HasMessage reports whether any recorded value contains substr,
// ignoring case.
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.Entries() {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}
