package events

import "github.com/atomicstack/snek-console/internal/logging"

type HistoryTracer struct{}

type PopupTracer struct{}

type PinTracer struct{}

var (
	History = HistoryTracer{}
	Popup   = PopupTracer{}
	Pin     = PinTracer{}
)

func (HistoryTracer) Submit(entry string, size int) {
	logging.Trace("history.submit", map[string]interface{}{"entry": entry, "size": size})
}

func (HistoryTracer) Shift(delta, index int) {
	logging.Trace("history.shift", map[string]interface{}{"delta": delta, "index": index})
}

func (HistoryTracer) Seed(count int) {
	logging.Trace("history.seed", map[string]interface{}{"count": count})
}

func (HistoryTracer) Load(count int, path string) {
	logging.Trace("history.load", map[string]interface{}{"count": count, "path": path})
}

func (PopupTracer) Open(kind, filter string, entries int) {
	logging.Trace("popup.open", map[string]interface{}{"kind": kind, "filter": filter, "entries": entries})
}

func (PopupTracer) Populate(kind, filter string, entries int) {
	logging.Trace("popup.populate", map[string]interface{}{"kind": kind, "filter": filter, "entries": entries})
}

func (PopupTracer) Stale(kind, filter string) {
	logging.Trace("popup.stale", map[string]interface{}{"kind": kind, "filter": filter})
}

func (PopupTracer) Cursor(kind string, cursors []int) {
	logging.Trace("popup.cursor", map[string]interface{}{"kind": kind, "cursors": cursors})
}

func (PopupTracer) Confirm(kind string, selected int) {
	logging.Trace("popup.confirm", map[string]interface{}{"kind": kind, "selected": selected})
}

func (PopupTracer) Cancel(kind string) {
	logging.Trace("popup.cancel", map[string]interface{}{"kind": kind})
}

func (PinTracer) Toggle(id string, pinned bool) {
	logging.Trace("pin.toggle", map[string]interface{}{"id": id, "pinned": pinned})
}
