package events

import "github.com/atomicstack/snek-console/internal/logging"

type TransportTracer struct{}

var Transport = TransportTracer{}

func (TransportTracer) Dial(url string) {
	logging.Trace("transport.dial", map[string]interface{}{"url": url})
}

func (TransportTracer) Send(tag string, size int) {
	logging.Trace("transport.send", map[string]interface{}{"command": tag, "bytes": size})
}

func (TransportTracer) SendRejected(tag string) {
	logging.Trace("transport.send.rejected", map[string]interface{}{"command": tag})
}

func (TransportTracer) Receive(tag string, size int) {
	logging.Trace("transport.receive", map[string]interface{}{"command": tag, "bytes": size})
}

func (TransportTracer) DecodeError(err error) {
	logging.Trace("transport.decode.error", map[string]interface{}{"error": err.Error()})
}

func (TransportTracer) Closed(reason string, pending int) {
	logging.Trace("transport.closed", map[string]interface{}{"reason": reason, "pending": pending})
}

func (TransportTracer) CallStart(responseID, ref int64) {
	logging.Trace("transport.call", map[string]interface{}{"response_id": responseID, "ref": ref})
}

func (TransportTracer) CallSettled(responseID int64, failed bool) {
	logging.Trace("transport.call.settled", map[string]interface{}{"response_id": responseID, "failed": failed})
}

func (TransportTracer) Orphan(responseID int64) {
	logging.Trace("transport.response.orphan", map[string]interface{}{"response_id": responseID})
}
