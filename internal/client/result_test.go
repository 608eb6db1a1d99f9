package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapSingleElement(t *testing.T) {
	results := []Result{{Doc: []byte(`{"a": 1}`)}}
	prediction := unwrapResults(results)

	assert.False(t, prediction.IsBatch())
	require.NotNil(t, prediction.Single)
	assert.Equal(t, int64(1), prediction.Single.Get("a").Int())
	assert.Len(t, prediction.All(), 1)
}

func TestUnwrapKeepsBatches(t *testing.T) {
	for _, size := range []int{0, 2, 5} {
		results := make([]Result, size)
		prediction := unwrapResults(results)
		assert.True(t, prediction.IsBatch(), "size %d", size)
		assert.Nil(t, prediction.Single)
		assert.Len(t, prediction.All(), size)
	}
}
