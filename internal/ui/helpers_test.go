package ui

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/snek-console/internal/backend"
	"github.com/atomicstack/snek-console/internal/logging"
	"github.com/atomicstack/snek-console/internal/protocol"
	"github.com/atomicstack/snek-console/internal/state"
)

type recordedCall struct {
	ref  int64
	args []any
}

// fakeSession answers calls from canned tables and records what the model
// sent.
type fakeSession struct {
	events    chan backend.Event
	submitted []string
	submitErr error
	calls     []recordedCall
	results   map[int64]json.RawMessage
	failures  map[int64]error
	resolved  []protocol.Response
	closed    bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		events:   make(chan backend.Event),
		results:  make(map[int64]json.RawMessage),
		failures: make(map[int64]error),
	}
}

func (s *fakeSession) Events() <-chan backend.Event { return s.events }

func (s *fakeSession) Submit(_ context.Context, expr string) error {
	s.submitted = append(s.submitted, expr)
	return s.submitErr
}

func (s *fakeSession) Call(_ context.Context, ref int64, args ...any) (json.RawMessage, error) {
	s.calls = append(s.calls, recordedCall{ref: ref, args: args})
	if err := s.failures[ref]; err != nil {
		return nil, err
	}
	return s.results[ref], nil
}

func (s *fakeSession) Resolve(resp protocol.Response) bool {
	s.resolved = append(s.resolved, resp)
	return true
}

func (s *fakeSession) Closed() bool { return s.closed }

type memoryHistoryDB struct {
	entries []string
}

func (db *memoryHistoryDB) Append(entry string) error {
	db.entries = append(db.entries, entry)
	return nil
}

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

func quietLogs(t *testing.T) {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "console.log"))
	t.Cleanup(func() { logging.Configure("") })
}

func newHarness(t *testing.T, session *fakeSession, past ...string) *Harness {
	t.Helper()
	quietLogs(t)
	opts := Options{History: state.NewHistoryStore(past...), Width: 80, Height: 30}
	if session != nil {
		opts.Session = session
	}
	m := NewModel(opts)
	m.now = func() time.Time { return fixedNow }
	return NewHarness(m)
}

func editorMarkup(id, fragment, text string) string {
	return `<div id="` + id + `" data-interactor="LiveEditor" data-params='{"content":{"live":"` + text +
		`","saved":"` + text + `"},"filename":"f.py","fragment":"` + fragment + `","py":{"save":1,"commit":2}}'></div>`
}
