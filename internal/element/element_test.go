package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var all = []Element{None, Fire, Ice}

func TestCombine(t *testing.T) {
	tests := []struct {
		current, incoming, expected Element
	}{
		{None, None, None},
		{None, Fire, Fire},
		{None, Ice, Ice},
		{Fire, None, Fire},
		{Fire, Fire, Fire},
		{Fire, Ice, None},
		{Ice, None, Ice},
		{Ice, Fire, None},
		{Ice, Ice, Ice},
	}

	for _, tc := range tests {
		t.Run(tc.current.String()+"+"+tc.incoming.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, Combine(tc.current, tc.incoming))
		})
	}
}

func TestCombineIsSymmetric(t *testing.T) {
	for _, a := range all {
		for _, b := range all {
			assert.Equal(t, Combine(a, b), Combine(b, a), "%v/%v", a, b)
		}
		assert.Equal(t, a, Combine(a, None))
	}
}

func TestParse(t *testing.T) {
	for _, e := range all {
		parsed, err := Parse(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, parsed)
	}
	_, err := Parse("lightning")
	assert.Error(t, err)
}
