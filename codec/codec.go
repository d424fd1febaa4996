// Package codec encodes non-empty slices as message payloads.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shamaton/msgpack/v2"
	"gopkg.in/yaml.v3"

	"github.com/sooomo/nonempty"
)

// ErrUnknownFormat is returned by ForFormat for an unsupported format name.
var ErrUnknownFormat = errors.New("codec: unknown format")

type PayloadMarshaler interface {
	Name() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonMarshaler struct{}

func (jsonMarshaler) Name() string                       { return "json" }
func (jsonMarshaler) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonMarshaler) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackMarshaler struct{}

func (msgpackMarshaler) Name() string                       { return "msgpack" }
func (msgpackMarshaler) Marshal(v any) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackMarshaler) Unmarshal(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

type yamlMarshaler struct{}

func (yamlMarshaler) Name() string                       { return "yaml" }
func (yamlMarshaler) Marshal(v any) ([]byte, error)      { return yaml.Marshal(v) }
func (yamlMarshaler) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

var (
	JSON    PayloadMarshaler = jsonMarshaler{}
	Msgpack PayloadMarshaler = msgpackMarshaler{}
	YAML    PayloadMarshaler = yamlMarshaler{}
)

// ForFormat resolves a format name, case-insensitively. The accepted names
// are json, msgpack (or mp) and yaml (or yml).
func ForFormat(name string) (PayloadMarshaler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "msgpack", "mp":
		return Msgpack, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encode writes items as a plain array in m's format.
func Encode[T any](m PayloadMarshaler, items nonempty.Slice1[T]) ([]byte, error) {
	data, err := m.Marshal(items.AsSlice())
	if err != nil {
		return nil, fmt.Errorf("codec: encode %s: %w", m.Name(), err)
	}
	return data, nil
}

// Decode reads an array in m's format. A payload holding an empty array, or
// nothing at all, fails with nonempty.ErrEmpty.
func Decode[T any](m PayloadMarshaler, data []byte) (nonempty.Slice1[T], error) {
	var items []T
	if len(data) > 0 {
		if err := m.Unmarshal(data, &items); err != nil {
			return nonempty.Slice1[T]{}, fmt.Errorf("codec: decode %s: %w", m.Name(), err)
		}
	}
	out, err := nonempty.TryFromSlice(items)
	if err != nil {
		return nonempty.Slice1[T]{}, fmt.Errorf("codec: decode %s: %w", m.Name(), err)
	}
	return out, nil
}
