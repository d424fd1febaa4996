package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooomo/nonempty"
	"github.com/sooomo/nonempty/codec"
)

type point struct {
	X int
	Y int
}

func TestForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want codec.PayloadMarshaler
	}{
		{"json", codec.JSON},
		{"JSON", codec.JSON},
		{"msgpack", codec.Msgpack},
		{"mp", codec.Msgpack},
		{"yaml", codec.YAML},
		{" yml ", codec.YAML},
	}
	for _, tt := range tests {
		got, err := codec.ForFormat(tt.name)
		require.NoErrorf(t, err, "format %q", tt.name)
		assert.Equal(t, tt.want, got)
	}

	_, err := codec.ForFormat("toml")
	require.ErrorIs(t, err, codec.ErrUnknownFormat)
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	items := nonempty.Of(point{1, 2}, point{3, 4}, point{5, 6})
	for _, m := range []codec.PayloadMarshaler{codec.JSON, codec.Msgpack, codec.YAML} {
		t.Run(m.Name(), func(t *testing.T) {
			t.Parallel()

			data, err := codec.Encode(m, items)
			require.NoError(t, err)

			got, err := codec.Decode[point](m, data)
			require.NoError(t, err)
			assert.Equal(t, items.AsSlice(), got.AsSlice())
		})
	}
}

func TestDecode_RejectsEmpty(t *testing.T) {
	t.Parallel()

	for _, m := range []codec.PayloadMarshaler{codec.JSON, codec.Msgpack, codec.YAML} {
		t.Run(m.Name(), func(t *testing.T) {
			t.Parallel()

			empty, err := m.Marshal([]string{})
			require.NoError(t, err)
			_, err = codec.Decode[string](m, empty)
			require.ErrorIs(t, err, nonempty.ErrEmpty)

			_, err = codec.Decode[string](m, nil)
			require.ErrorIs(t, err, nonempty.ErrEmpty)
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	_, err := codec.Decode[int](codec.JSON, []byte(`{"not":"an array"}`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, nonempty.ErrEmpty)
	assert.Contains(t, err.Error(), "codec: decode json")
}
