package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOppositeIsInvolution(t *testing.T) {
	for _, d := range Directions {
		t.Run(d.String(), func(t *testing.T) {
			assert.NotEqual(t, d, d.Opposite())
			assert.Equal(t, d, d.Opposite().Opposite())
		})
	}
	assert.Equal(t, DirNone, DirNone.Opposite())
}

func TestStep(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected TileLocation
	}{
		{DirLeft, L(1, 2)},
		{DirUp, L(2, 1)},
		{DirRight, L(3, 2)},
		{DirDown, L(2, 3)},
		{DirNone, L(2, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, L(2, 2).Step(tc.dir))
		})
	}
}

func TestStepThenOppositeReturns(t *testing.T) {
	start := L(5, 7)
	for _, d := range Directions {
		assert.Equal(t, start, start.Step(d).Step(d.Opposite()), "direction %v", d)
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		parsed, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}

	parsed, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, DirNone, parsed)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestNoLocation(t *testing.T) {
	assert.False(t, NoLocation.Valid())
	assert.True(t, L(0, 0).Valid())
	assert.Equal(t, "(3,4)", L(3, 4).String())
}

func TestChebyshev(t *testing.T) {
	assert.Equal(t, 0, L(1, 1).Chebyshev(L(1, 1)))
	assert.Equal(t, 1, L(1, 1).Chebyshev(L(2, 2)))
	assert.Equal(t, 3, L(0, 0).Chebyshev(L(-3, 2)))
}
