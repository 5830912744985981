package events

import "github.com/atomicstack/snek-console/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Focus(mode string) {
	logging.Trace("ui.focus", map[string]interface{}{"mode": mode})
}

func (UITracer) Status(kind, value string) {
	logging.Trace("ui.status", map[string]interface{}{"type": kind, "value": value})
}

func (UITracer) Select(index int, id string) {
	logging.Trace("ui.select", map[string]interface{}{"index": index, "id": id})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared(popup string) {
	logging.Trace("filter.clear", map[string]interface{}{"popup": popup})
}

func (FilterTracer) WordBackspace(popup, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"popup": popup, "filter": filter})
}

func (FilterTracer) Cursor(popup string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"popup": popup, "cursor": pos})
}

func (FilterTracer) Append(popup, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"popup": popup, "filter": filter})
}

func (FilterTracer) Backspace(popup, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"popup": popup, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
