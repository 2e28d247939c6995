package history

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rustyeddy/swingtree/series"
	"github.com/rustyeddy/swingtree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bruteForce(m series.Mode, prices []float64) float64 {
	var acc float64
	switch m {
	case series.Minimum:
		acc = math.Inf(1)
	case series.Maximum:
		acc = math.Inf(-1)
	}
	for _, p := range prices {
		switch m {
		case series.Minimum:
			acc = math.Min(acc, p)
		case series.Maximum:
			acc = math.Max(acc, p)
		case series.Sum:
			acc += p
		}
	}
	return acc
}

func TestNew(t *testing.T) {
	_, err := New(0, series.Minimum)
	assert.ErrorIs(t, err, tree.ErrConfiguration)

	_, err = New(5, series.Mode(7))
	assert.ErrorIs(t, err, tree.ErrInvalidOperation)

	w, err := New(3, series.Maximum)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Cap())
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, series.Maximum, w.Mode())
	assert.False(t, w.Full())
}

func TestTrendBeforePush(t *testing.T) {
	w, err := New(3, series.Minimum)
	require.NoError(t, err)

	_, err = w.Trend()
	assert.ErrorIs(t, err, tree.ErrInvalidOperation)

	_, ok := w.Last()
	assert.False(t, ok)
	assert.NoError(t, w.Check())
}

func TestPushEvictsOldest(t *testing.T) {
	w, err := New(3, series.Minimum)
	require.NoError(t, err)

	for _, p := range []float64{10, 8, 12} {
		_, evicted, err := w.Push(p)
		require.NoError(t, err)
		assert.False(t, evicted)
	}
	assert.True(t, w.Full())

	trend, err := w.Trend()
	require.NoError(t, err)
	assert.Equal(t, 8.0, trend)

	old, evicted, err := w.Push(11)
	require.NoError(t, err)
	assert.True(t, evicted)
	assert.Equal(t, 10.0, old)
	assert.Equal(t, []float64{8, 12, 11}, w.Prices())

	old, evicted, err = w.Push(13)
	require.NoError(t, err)
	assert.True(t, evicted)
	assert.Equal(t, 8.0, old)
	assert.Equal(t, []float64{12, 11, 13}, w.Prices())

	trend, err = w.Trend()
	require.NoError(t, err)
	assert.Equal(t, 11.0, trend)

	last, ok := w.Last()
	require.True(t, ok)
	assert.Equal(t, 13.0, last)
	assert.NoError(t, w.Check())
}

func TestPushRejectsNaN(t *testing.T) {
	w, err := New(2, series.Sum)
	require.NoError(t, err)
	_, _, err = w.Push(1)
	require.NoError(t, err)

	_, _, err = w.Push(math.NaN())
	assert.ErrorIs(t, err, tree.ErrConfiguration)
	assert.Equal(t, []float64{1}, w.Prices())
}

func TestCapacityOne(t *testing.T) {
	w, err := New(1, series.Sum)
	require.NoError(t, err)

	for _, p := range []float64{4, 9, 2} {
		_, _, err := w.Push(p)
		require.NoError(t, err)
		trend, err := w.Trend()
		require.NoError(t, err)
		assert.Equal(t, p, trend)
	}
}

func TestTrendMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, m := range series.Modes() {
		t.Run(m.String(), func(t *testing.T) {
			w, err := New(7, m)
			require.NoError(t, err)

			for step := 0; step < 100; step++ {
				_, _, err := w.Push(float64(rng.Intn(1000)) / 10)
				require.NoError(t, err)
				require.NoError(t, w.Check())

				trend, err := w.Trend()
				require.NoError(t, err)
				assert.InDelta(t, bruteForce(m, w.Prices()), trend, 1e-9, "step %d", step)
			}
		})
	}
}
