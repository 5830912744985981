package protocol

import (
	"encoding/json"

	"github.com/pkg/errors"
)

type envelope struct {
	Command string `json:"command"`
}

var decoders = map[string]func([]byte) (Message, error){
	TagSubmit:     decodeAs[Submit],
	TagCallback:   decodeAs[Callback],
	TagResource:   decodeAs[Resource],
	TagResult:     decodeAs[Result],
	TagEcho:       decodeAs[Echo],
	TagResponse:   decodeAs[Response],
	TagPasteCode:  decodeAs[PasteCode],
	TagPasteVar:   decodeAs[PasteCode],
	TagStatus:     decodeAs[Status],
	TagSetNav:     decodeAs[SetNav],
	TagEval:       decodeAs[Eval],
	TagSetMode:    decodeAs[SetMode],
	TagAddHistory: decodeAs[AddHistory],
	TagSetLib:     decodeAs[SetLib],
	TagBroadcast:  decodeAs[Broadcast],
	TagFill:       decodeAs[Fill],
	TagInsert:     decodeAs[Insert],
	TagClear:      decodeAs[Clear],
}

func decodeAs[T Message](data []byte) (Message, error) {
	var msg T
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Decode parses one frame. Frames with an unrecognised tag decode to Unknown
// rather than failing, so a newer host never breaks an older console.
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "decode envelope")
	}
	decode, ok := decoders[env.Command]
	if !ok {
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return Unknown{Command: env.Command, Raw: raw}, nil
	}
	msg, err := decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", env.Command)
	}
	return msg, nil
}

// Encode serialises msg with its command tag.
func Encode(msg Message) ([]byte, error) {
	if msg == nil {
		return nil, errors.New("encode: nil message")
	}
	if u, ok := msg.(Unknown); ok {
		return u.Raw, nil
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", msg.Tag())
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, errors.Wrapf(err, "encode %s", msg.Tag())
	}
	tag, err := json.Marshal(msg.Tag())
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", msg.Tag())
	}
	fields["command"] = tag
	return json.Marshal(fields)
}
