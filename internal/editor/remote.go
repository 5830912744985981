package editor

import (
	"context"
	"encoding/json"
	"fmt"
)

// Caller invokes host callables by reference.
type Caller interface {
	Call(ctx context.Context, ref int64, args ...any) (json.RawMessage, error)
}

// RemoteSaver saves through the two callables the host attaches to an
// editor interactor.
type RemoteSaver struct {
	Caller    Caller
	SaveRef   int64
	CommitRef int64
}

func (s RemoteSaver) Save(ctx context.Context, text string) error {
	_, err := s.Caller.Call(ctx, s.SaveRef, text)
	return err
}

func (s RemoteSaver) Commit(ctx context.Context, text string) error {
	_, err := s.Caller.Call(ctx, s.CommitRef, text)
	return err
}

// Params is the configuration the host embeds in an editor interactor.
type Params struct {
	Content   Content `json:"content"`
	Filename  string  `json:"filename"`
	Fragment  string  `json:"fragment"`
	Highlight bool    `json:"highlight"`
	MaxHeight int     `json:"max_height"`
	Autofocus bool    `json:"autofocus"`
	Py        struct {
		Save   *int64 `json:"save"`
		Commit *int64 `json:"commit"`
	} `json:"py"`
}

// ParseParams decodes interactor params. Both callables are required.
func ParseParams(raw string) (Params, error) {
	var p Params
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Params{}, fmt.Errorf("editor params: %w", err)
	}
	if p.Py.Save == nil || p.Py.Commit == nil {
		return Params{}, fmt.Errorf("editor params: missing save or commit callable")
	}
	return p, nil
}

// Saver returns a RemoteSaver for the callables in p.
func (p Params) Saver(caller Caller) RemoteSaver {
	return RemoteSaver{Caller: caller, SaveRef: *p.Py.Save, CommitRef: *p.Py.Commit}
}
