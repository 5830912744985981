package protocol

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidSourceType is the failure type the host uses for source that does
// not parse or does not match the fragment being edited.
const InvalidSourceType = "InvalidSourceException"

// ErrConnectionClosed is returned for any send attempted after the channel
// has been marked closed.
var ErrConnectionClosed = errors.New("operation failed because the connection is closed")

// RemoteError is the structured failure payload carried by a response.
type RemoteError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RemoteCallError reports a correlated call whose response carried an error.
// It unwraps to an *InvalidSourceError or a *GenericRemoteError.
type RemoteCallError struct {
	ResponseID int64
	Type       string
	Message    string
}

func (e *RemoteCallError) Error() string {
	return e.Unwrap().Error()
}

func (e *RemoteCallError) Unwrap() error {
	return Classify(RemoteError{Type: e.Type, Message: e.Message})
}

// InvalidSourceError is rendered as its message alone.
type InvalidSourceError struct {
	Message string
}

func (e *InvalidSourceError) Error() string {
	return e.Message
}

// GenericRemoteError is rendered as "<kind>: <message>".
type GenericRemoteError struct {
	Kind    string
	Message string
}

func (e *GenericRemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// UnknownCommandError describes an inbound frame nothing handles.
type UnknownCommandError struct {
	Tag string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Tag)
}

// Classify maps a structured failure onto the error type used for display.
func Classify(remote RemoteError) error {
	if remote.Type == InvalidSourceType {
		return &InvalidSourceError{Message: remote.Message}
	}
	return &GenericRemoteError{Kind: remote.Type, Message: remote.Message}
}

// DisplayMessage returns the status text for err: invalid-source failures
// verbatim, other host failures prefixed by their kind, and anything else by
// its plain error text.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var invalid *InvalidSourceError
	if errors.As(err, &invalid) {
		return invalid.Message
	}
	var generic *GenericRemoteError
	if errors.As(err, &generic) {
		return generic.Error()
	}
	return err.Error()
}
