package embedding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l2(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestNormalize(t *testing.T) {
	t.Run("scales to unit norm", func(t *testing.T) {
		out := Normalize([]float32{3, 4})
		assert.InDelta(t, 1.0, l2(out), 1e-6)
		assert.InDelta(t, 0.6, float64(out[0]), 1e-6)
		assert.InDelta(t, 0.8, float64(out[1]), 1e-6)
	})

	t.Run("unit vector is unchanged", func(t *testing.T) {
		out := Normalize([]float32{0, 1, 0})
		assert.InDelta(t, 0.0, float64(out[0]), 1e-6)
		assert.InDelta(t, 1.0, float64(out[1]), 1e-6)
	})

	t.Run("zero vector maps to zeros", func(t *testing.T) {
		out := Normalize([]float32{0, 0, 0})
		require.Len(t, out, 3)
		for _, v := range out {
			assert.Zero(t, v)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := []float32{2, 0}
		_ = Normalize(in)
		assert.Equal(t, float32(2), in[0])
	})
}
