package nonempty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sooomo/nonempty"
)

func TestNewPositiveInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-5, true},
		{0, true},
		{1, false},
		{42, false},
	}
	for _, tt := range tests {
		p, err := nonempty.NewPositiveInt(tt.n)
		if tt.wantErr {
			require.ErrorIsf(t, err, nonempty.ErrNotPositive, "n=%d", tt.n)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.n, p.Get())
	}
}

func TestPositiveInt_String(t *testing.T) {
	t.Parallel()

	p, err := nonempty.NewPositiveInt(7)
	require.NoError(t, err)
	assert.Equal(t, "7", p.String())
}
