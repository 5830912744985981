package events

import "github.com/atomicstack/snek-console/internal/logging"

type DispatchTracer struct{}

var Dispatch = DispatchTracer{}

func (DispatchTracer) Route(tag string) {
	logging.Trace("dispatch.route", map[string]interface{}{"command": tag})
}

// Unknown records a frame no handler claimed; dump is a spew rendering of it.
func (DispatchTracer) Unknown(tag, dump string) {
	logging.Trace("dispatch.unknown", map[string]interface{}{"command": tag, "dump": dump})
}

func (DispatchTracer) Local(name, args string) {
	logging.Trace("dispatch.local", map[string]interface{}{"name": name, "args": args})
}

func (DispatchTracer) Submit(expr string) {
	logging.Trace("dispatch.submit", map[string]interface{}{"expr": expr})
}

func (DispatchTracer) RejectedOp(op string) {
	logging.Trace("dispatch.eval.rejected", map[string]interface{}{"op": op})
}
