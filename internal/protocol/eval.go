package protocol

// ClientOp names one of the operations the host may ask the console to
// perform. The set is closed; the host cannot ship arbitrary behaviour.
type ClientOp string

const (
	OpFocusInput  ClientOp = "focus_input"
	OpClearOutput ClientOp = "clear_output"
	OpScrollEnd   ClientOp = "scroll_end"
	OpSetInput    ClientOp = "set_input"
	OpTogglePin   ClientOp = "toggle_pin"
	OpOpenEditor  ClientOp = "open_editor"
)

var clientOps = map[ClientOp]struct{}{
	OpFocusInput:  {},
	OpClearOutput: {},
	OpScrollEnd:   {},
	OpSetInput:    {},
	OpTogglePin:   {},
	OpOpenEditor:  {},
}

// Valid reports whether op belongs to the supported set.
func (op ClientOp) Valid() bool {
	_, ok := clientOps[op]
	return ok
}

// Eval requests a client-side operation. Target names an element id for the
// element-scoped ops; Value carries text for OpSetInput.
type Eval struct {
	Op     ClientOp `json:"op"`
	Target string   `json:"target,omitempty"`
	Value  string   `json:"value,omitempty"`
}
