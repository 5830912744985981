package editor

import "context"

type fakeWidget struct {
	text string
}

func (w *fakeWidget) Text() string     { return w.text }
func (w *fakeWidget) SetText(s string) { w.text = s }

type fakeSaver struct {
	err       error
	saved     []string
	committed []string
}

func (s *fakeSaver) Save(_ context.Context, text string) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, text)
	return nil
}

func (s *fakeSaver) Commit(_ context.Context, text string) error {
	if s.err != nil {
		return s.err
	}
	s.committed = append(s.committed, text)
	return nil
}

func newTestController(fragment, text string, saver Saver) (*Controller, *fakeWidget) {
	w := &fakeWidget{}
	c := NewController(Options{
		Fragment: fragment,
		Widget:   w,
		Saver:    saver,
		Content:  Content{Live: text, Saved: text},
	})
	return c, w
}
