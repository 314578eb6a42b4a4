package codec

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/reoring/propschema"
)

// Msgpack is a Codec that serializes documents using vmihailenco/msgpack/v5.
// The zero value is ready to use.
type Msgpack struct{}

var _ Codec = Msgpack{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Encode(doc *propschema.Node) ([]byte, error) {
	return msgpack.Marshal(toWire("", doc))
}

func (Msgpack) Decode(b []byte) (*propschema.Node, error) {
	var w wireNode
	if err := msgpack.Unmarshal(b, &w); err != nil {
		return nil, parseError("msgpack", err)
	}
	return fromWire(w, "")
}
