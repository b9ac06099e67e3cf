package resetdb

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type fakeExecutor struct {
	mu sync.Mutex

	tables   []string
	queryErr error
	batchErr error
	seedErr  error
	// execErrs fails any Exec whose SQL contains the key.
	execErrs map[string]error

	queries []string
	batches [][]string
	execs   []string
}

func (f *fakeExecutor) QueryStrings(_ context.Context, query string, _ ...any) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return append([]string(nil), f.tables...), nil
}

func (f *fakeExecutor) Exec(_ context.Context, query string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs = append(f.execs, query)
	for key, err := range f.execErrs {
		if strings.Contains(query, key) {
			return Result{}, err
		}
	}
	if !strings.HasPrefix(query, "SELECT setval") && f.seedErr != nil {
		return Result{}, f.seedErr
	}
	return Result{RowsAffected: 1, Command: "INSERT 0 1"}, nil
}

func (f *fakeExecutor) ExecBatch(_ context.Context, statements []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, statements)
	return f.batchErr
}

func (f *fakeExecutor) sequenceExecs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, q := range f.execs {
		if strings.HasPrefix(q, "SELECT setval") {
			out = append(out, q)
		}
	}
	return out
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) add(level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg, args: args})
}

func (r *recordingLogger) Info(msg string, args ...any)  { r.add("info", msg, args) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.add("warn", msg, args) }
func (r *recordingLogger) Error(msg string, args ...any) { r.add("error", msg, args) }

func (r *recordingLogger) level(level string) []logEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []logEntry
	for _, e := range r.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

func (e logEntry) String() string {
	return fmt.Sprintf("%s %s%s", e.level, e.msg, formatArgs(e.args))
}
