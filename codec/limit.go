package codec

import (
	"github.com/reoring/propschema"
)

// Limit wraps another codec to enforce a maximum allowed payload size
// at Decode time. Encode is forwarded to Inner unchanged.
// If MaxDecode <= 0, size limiting is disabled.
type Limit struct {
	// Inner is the underlying codec being wrapped. It must be set.
	Inner Codec
	// MaxDecode is the maximum permitted length (in bytes) of the incoming
	// payload for Decode.
	MaxDecode int
}

func (c Limit) Name() string                                { return c.Inner.Name() }
func (c Limit) Encode(doc *propschema.Node) ([]byte, error) { return c.Inner.Encode(doc) }
func (c Limit) Decode(b []byte) (*propschema.Node, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		return nil, propschema.Issues{{
			Path:    "/",
			Code:    propschema.CodeTooBig,
			Message: "payload too large",
			Params:  map[string]any{"size": len(b), "max": c.MaxDecode},
		}}
	}
	return c.Inner.Decode(b)
}
