package utils

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// JSONCodecName is the content subtype under which JSONCodec is registered.
// Clients select it with grpc.CallContentSubtype(JSONCodecName).
const JSONCodecName = "json"

// JSONCodec lets the gRPC transport exchange plain Go structs encoded as JSON,
// so the remote-state service needs no generated protobuf types.
type JSONCodec struct{}

func init() {
	encoding.RegisterCodec(JSONCodec{})
}

// Marshal implements [encoding.Codec].
func (JSONCodec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal: %w", err)
	}
	return b, nil
}

// Unmarshal implements [encoding.Codec].
func (JSONCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal: %w", err)
	}
	return nil
}

// Name implements [encoding.Codec].
func (JSONCodec) Name() string {
	return JSONCodecName
}
