// Package protocol defines the JSON messages exchanged with the evaluation
// host. Every message is an object carrying a "command" tag; the tag selects
// one of the closed set of variants declared here.
package protocol

import (
	"encoding/json"
)

// Outbound tags.
const (
	TagSubmit   = "submit"
	TagCallback = "callback"
)

// Inbound tags.
const (
	TagResource   = "resource"
	TagResult     = "result"
	TagEcho       = "echo"
	TagResponse   = "response"
	TagPasteCode  = "pastecode"
	TagPasteVar   = "pastevar"
	TagStatus     = "status"
	TagSetNav     = "set_nav"
	TagEval       = "eval"
	TagSetMode    = "set_mode"
	TagAddHistory = "add_history"
	TagSetLib     = "set_lib"
	TagBroadcast  = "broadcast"
	TagFill       = "fill"
	TagInsert     = "insert"
	TagClear      = "clear"
)

// Result types with special rendering rules.
const (
	ResultStatement = "statement"
	ResultPrint     = "print"
)

// Message is implemented by every wire variant.
type Message interface {
	Tag() string
}

// Submit asks the host to evaluate an expression.
type Submit struct {
	Expr string `json:"expr"`
}

// Callback invokes a host-side callable by its opaque reference.
type Callback struct {
	ID         int64 `json:"id"`
	ResponseID int64 `json:"response_id"`
	Arguments  []any `json:"arguments"`
}

// Resource injects a global resource (scripts, styles) into the page.
type Resource struct {
	Value string `json:"value"`
}

// Result carries a rendered evaluation result.
type Result struct {
	Value  string `json:"value"`
	Type   string `json:"type"`
	EvalID string `json:"evalid,omitempty"`
}

// Echo carries the submitted source for read-only display.
type Echo struct {
	Value    string `json:"value"`
	Language string `json:"language,omitempty"`
}

// Response settles a correlated call.
type Response struct {
	ResponseID int64           `json:"response_id"`
	Value      json.RawMessage `json:"value,omitempty"`
	Error      *RemoteError    `json:"error,omitempty"`
}

// PasteCode inserts text at the input cursor.
type PasteCode struct {
	Value string `json:"value"`
}

// Status is a transient status-bar notification.
type Status struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SetNav replaces the navigation bar content.
type SetNav struct {
	Value string `json:"value"`
	NavID string `json:"navid,omitempty"`
}

// SetMode replaces the input mode indicator.
type SetMode struct {
	HTML string `json:"html"`
}

// AddHistory seeds older history entries.
type AddHistory struct {
	History []string `json:"history"`
}

// SetLib registers named host callables.
type SetLib struct {
	Lib map[string]int64 `json:"lib"`
}

// Broadcast fans a payload out to every element subscribed to Key.
type Broadcast struct {
	Key     string `json:"key"`
	Subkey  string `json:"subkey,omitempty"`
	Value   string `json:"value,omitempty"`
	Slot    string `json:"slot,omitempty"`
	Content string `json:"content,omitempty"`
}

// Fill replaces the children of the element with id Target.
type Fill struct {
	Target string `json:"target"`
	Value  string `json:"value"`
}

// Insert adds Value as a child of Target at Index, or at the end when Index
// is nil or out of range.
type Insert struct {
	Target string `json:"target"`
	Value  string `json:"value"`
	Index  *int   `json:"index,omitempty"`
}

// Clear removes every child of Target.
type Clear struct {
	Target string `json:"target"`
}

// Unknown wraps a frame whose tag is not part of the closed set.
type Unknown struct {
	Command string
	Raw     json.RawMessage
}

func (Submit) Tag() string     { return TagSubmit }
func (Callback) Tag() string   { return TagCallback }
func (Resource) Tag() string   { return TagResource }
func (Result) Tag() string     { return TagResult }
func (Echo) Tag() string       { return TagEcho }
func (Response) Tag() string   { return TagResponse }
func (PasteCode) Tag() string  { return TagPasteCode }
func (Status) Tag() string     { return TagStatus }
func (SetNav) Tag() string     { return TagSetNav }
func (Eval) Tag() string       { return TagEval }
func (SetMode) Tag() string    { return TagSetMode }
func (AddHistory) Tag() string { return TagAddHistory }
func (SetLib) Tag() string     { return TagSetLib }
func (Broadcast) Tag() string  { return TagBroadcast }
func (Fill) Tag() string       { return TagFill }
func (Insert) Tag() string     { return TagInsert }
func (Clear) Tag() string      { return TagClear }
func (u Unknown) Tag() string  { return u.Command }

// EventDescriptor describes the UI event that triggered a callback.
type EventDescriptor struct {
	Type     string `json:"type"`
	Button   int    `json:"button"`
	ShiftKey bool   `json:"shiftKey"`
	AltKey   bool   `json:"altKey"`
	CtrlKey  bool   `json:"ctrlKey"`
	MetaKey  bool   `json:"metaKey"`
	Key      string `json:"key,omitempty"`
	OffsetX  int    `json:"offsetX"`
	OffsetY  int    `json:"offsetY"`
}

// Click returns the descriptor for a primary-button activation.
func Click(ctrl, alt bool) EventDescriptor {
	return EventDescriptor{Type: "click", CtrlKey: ctrl, AltKey: alt}
}
