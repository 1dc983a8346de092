package codec

import (
	"encoding/json"

	"github.com/go-kratos/kratos/v2/encoding"
)

// Name is the codec name registered with the kratos encoding registry.
const Name = "json"

// Indent is the per-level indentation used for written reports.
const Indent = "    "

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

// Marshal encodes v with four-space indentation. Values implementing
// json.Marshaler (record.Value) control their own key order.
func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", Indent)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return Name }
