package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeEveryKind(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 10)

	for _, kind := range kinds {
		first, err := Describe(kind)
		require.NoError(t, err, "kind %q", kind)
		require.NotEmpty(t, first, "kind %q", kind)

		// Stable across repeated calls.
		second, err := Describe(kind)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestDescribeReturnsACopy(t *testing.T) {
	specs, err := Describe(KindCourse)
	require.NoError(t, err)
	specs[0].Name = "mutated"

	again, err := Describe(KindCourse)
	require.NoError(t, err)
	assert.Equal(t, "title", again[0].Name)
}

func TestDescribeUnknownKind(t *testing.T) {
	_, err := Describe("widget")
	require.Error(t, err)
	assert.True(t, IsUnknownKind(err))
	assert.Contains(t, err.Error(), "widget")
}

func TestDescribeAll(t *testing.T) {
	all := DescribeAll()
	require.Len(t, all, 10)
	for kind, specs := range all {
		assert.NotEmpty(t, specs, "kind %q", kind)
	}
	assert.Contains(t, all, KindQuizAttempt)
}
