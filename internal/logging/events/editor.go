package events

import "github.com/atomicstack/snek-console/internal/logging"

type EditorTracer struct{}

var Editor = EditorTracer{}

func (EditorTracer) Open(fragment, filename string) {
	logging.Trace("editor.open", map[string]interface{}{"fragment": fragment, "filename": filename})
}

func (EditorTracer) Status(fragment, status, message string) {
	logging.Trace("editor.status", map[string]interface{}{"fragment": fragment, "status": status, "message": message})
}

func (EditorTracer) Save(fragment string, commit bool) {
	logging.Trace("editor.save", map[string]interface{}{"fragment": fragment, "commit": commit})
}

func (EditorTracer) SaveFailed(fragment, message string) {
	logging.Trace("editor.save.failed", map[string]interface{}{"fragment": fragment, "message": message})
}

func (EditorTracer) Reset(fragment string) {
	logging.Trace("editor.reset", map[string]interface{}{"fragment": fragment})
}

func (EditorTracer) Broadcast(fragment, slot string, notified, pruned int) {
	logging.Trace("editor.broadcast", map[string]interface{}{
		"fragment": fragment,
		"slot":     slot,
		"notified": notified,
		"pruned":   pruned,
	})
}
