package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenresRoundTripKeepsOrder(t *testing.T) {
	in := Genres{"Jazz", "Folk"}

	v, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, "Jazz,Folk", v)

	var out Genres
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.Equal(t, in, out)
}

func TestGenresScanEmpty(t *testing.T) {
	for _, src := range []any{nil, "", []byte("")} {
		var g Genres
		require.NoError(t, g.Scan(src))
		assert.NotNil(t, g)
		assert.Empty(t, g)
	}
}

func TestGenresScanRejectsUnknownType(t *testing.T) {
	var g Genres
	assert.Error(t, g.Scan(42))
}
