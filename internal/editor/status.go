// Package editor tracks the content state of live-backed code fragments.
//
// A fragment has two acknowledged versions held in Content: Live, the text
// last accepted by a plain save, and Saved, the text last accepted by a
// commit. The text currently displayed by the editing widget is compared
// against both to derive a Status on every change.
package editor

// Status is the derived display state of a controller.
type Status int

const (
	StatusSaved Status = iota
	StatusLive
	StatusDirty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusLive:
		return "live"
	case StatusDirty:
		return "dirty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Text is the status line shown for non-error states.
func (s Status) Text() string {
	switch s {
	case StatusSaved:
		return "live, saved on disk"
	case StatusLive:
		return "live, not saved"
	case StatusDirty:
		return "modified"
	default:
		return ""
	}
}

// Content holds the acknowledged versions of a fragment.
type Content struct {
	Live  string `json:"live"`
	Saved string `json:"saved"`
}

// Slot names one field of Content.
type Slot int

const (
	SlotLive Slot = iota
	SlotSaved
)

func (s Slot) String() string {
	if s == SlotSaved {
		return "saved"
	}
	return "live"
}

// ParseSlot maps the wire name of a slot.
func ParseSlot(name string) (Slot, bool) {
	switch name {
	case "live":
		return SlotLive, true
	case "saved":
		return SlotSaved, true
	}
	return SlotLive, false
}

// Derive returns the status implied by the displayed text.
func Derive(displayed string, c Content) Status {
	switch {
	case displayed != c.Live:
		return StatusDirty
	case displayed == c.Saved:
		return StatusSaved
	default:
		return StatusLive
	}
}

// State is a derived status with its display message. A failed save leaves
// an error state that survives exactly one change check.
type State struct {
	Status  Status
	Message string
	hold    bool
}

// Settled derives a fresh state, discarding any error.
func Settled(displayed string, c Content) State {
	status := Derive(displayed, c)
	return State{Status: status, Message: status.Text()}
}

// Failed returns the error state for a failed save.
func Failed(message string) State {
	return State{Status: StatusError, Message: message, hold: true}
}

// Next applies one change check to s.
func (s State) Next(displayed string, c Content) State {
	if s.Status == StatusError && s.hold {
		return State{Status: StatusError, Message: s.Message}
	}
	return Settled(displayed, c)
}
