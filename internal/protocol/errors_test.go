package protocol

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayMessageInvalidSourceIsVerbatim(t *testing.T) {
	err := &RemoteCallError{ResponseID: 1, Type: InvalidSourceType, Message: "line 3: bad syntax"}
	assert.Equal(t, "line 3: bad syntax", DisplayMessage(err))

	var invalid *InvalidSourceError
	assert.True(t, errors.As(err, &invalid))
}

func TestDisplayMessageGenericIsPrefixed(t *testing.T) {
	err := &RemoteCallError{ResponseID: 2, Type: "RuntimeError", Message: "x"}
	assert.Equal(t, "RuntimeError: x", DisplayMessage(err))
	assert.Equal(t, "RuntimeError: x", err.Error())
}

func TestDisplayMessageSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("save: %w", &RemoteCallError{Type: InvalidSourceType, Message: "nope"})
	assert.Equal(t, "nope", DisplayMessage(err))
	assert.Equal(t, "operation failed because the connection is closed", DisplayMessage(ErrConnectionClosed))
	assert.Equal(t, "", DisplayMessage(nil))
}
