package nonempty

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	_ json.Marshaler   = Slice1[int]{}
	_ json.Unmarshaler = (*Slice1[int])(nil)
	_ yaml.Marshaler   = Slice1[int]{}
	_ yaml.Unmarshaler = (*Slice1[int])(nil)
)

func (s Slice1[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal([]T(s.items))
}

// UnmarshalJSON accepts a JSON array with at least one element. An empty
// array or null fails with ErrEmpty and leaves s unchanged.
func (s *Slice1[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	return s.assign(items)
}

func (s Slice1[T]) MarshalYAML() (any, error) {
	return []T(s.items), nil
}

// UnmarshalYAML accepts a YAML sequence with at least one element. yaml.v3
// does not call it for an explicit null, which leaves s as it was.
func (s *Slice1[T]) UnmarshalYAML(value *yaml.Node) error {
	var items []T
	if err := value.Decode(&items); err != nil {
		return err
	}
	return s.assign(items)
}

func (s *Slice1[T]) assign(items []T) error {
	out, err := TryFromSlice(items)
	if err != nil {
		return fmt.Errorf("decode %T: %w", *s, err)
	}
	*s = out
	return nil
}
