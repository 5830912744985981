package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRoutesKnownTags(t *testing.T) {
	msg, err := Decode([]byte(`{"command":"result","value":"<b>4</b>","type":"print","evalid":"7"}`))
	require.NoError(t, err)
	result, ok := msg.(Result)
	require.True(t, ok, "expected Result, got %T", msg)
	assert.Equal(t, "<b>4</b>", result.Value)
	assert.Equal(t, ResultPrint, result.Type)
	assert.Equal(t, "7", result.EvalID)
}

func TestDecodePasteVarAlias(t *testing.T) {
	msg, err := Decode([]byte(`{"command":"pastevar","value":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, PasteCode{Value: "x"}, msg)
}

func TestDecodeUnknownTagKeepsFrame(t *testing.T) {
	frame := `{"command":"teleport","where":"mars"}`
	msg, err := Decode([]byte(frame))
	require.NoError(t, err)
	unknown, ok := msg.(Unknown)
	require.True(t, ok, "expected Unknown, got %T", msg)
	assert.Equal(t, "teleport", unknown.Tag())
	assert.JSONEq(t, frame, string(unknown.Raw))
}

func TestDecodeRejectsMalformedFrames(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"command":"set_lib","lib":"nope"}`))
	assert.Error(t, err)
}

func TestDecodeResponseError(t *testing.T) {
	msg, err := Decode([]byte(`{"command":"response","response_id":3,"error":{"type":"KeyError","message":"'a'"}}`))
	require.NoError(t, err)
	resp := msg.(Response)
	assert.Equal(t, int64(3), resp.ResponseID)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "KeyError", resp.Error.Type)
}

func TestEncodeAddsCommandTag(t *testing.T) {
	data, err := Encode(Callback{ID: 12, ResponseID: 4, Arguments: []any{"a", 1}})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "callback", fields["command"])
	assert.Equal(t, float64(12), fields["id"])
	assert.Equal(t, float64(4), fields["response_id"])
	assert.Equal(t, []any{"a", float64(1)}, fields["arguments"])
}

func TestEncodeDecodeEvalOp(t *testing.T) {
	data, err := Encode(Eval{Op: OpTogglePin, Target: "out-3"})
	require.NoError(t, err)
	msg, err := Decode(data)
	require.NoError(t, err)
	eval := msg.(Eval)
	assert.True(t, eval.Op.Valid())
	assert.Equal(t, "out-3", eval.Target)
	assert.False(t, ClientOp("window.location='x'").Valid())
}
