package dat

import (
	"encoding/json"

	"google.golang.org/protobuf/proto"
)

// Codec is the value-store strategy turning typed payloads into the byte
// blobs the binary format stores, and back. The DoubleArray never
// inspects payload contents; it only moves blobs to and from Codec.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// JSONCodec is the default Codec, used by NewTrie unless WithCodec
// overrides it.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

// ProtoCodec encodes values that are protobuf messages directly via
// proto.Marshal/Unmarshal, for callers who would otherwise pay to
// marshal a protobuf message to JSON and back. New must return a fresh
// zero message of the concrete type V, since Decode needs somewhere to
// unmarshal into.
type ProtoCodec[V proto.Message] struct {
	New func() V
}

func (c ProtoCodec[V]) Encode(v V) ([]byte, error) { return proto.Marshal(v) }

func (c ProtoCodec[V]) Decode(b []byte) (V, error) {
	v := c.New()
	if err := proto.Unmarshal(b, v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}
