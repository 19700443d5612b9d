package montecarlo

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPoints = 2_000_000
	tolerance  = 0.01
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name    string
		points  int64
		workers int
		want    []int64
	}{
		{"even", 12, 4, []int64{3, 3, 3, 3}},
		{"remainder", 10, 4, []int64{3, 3, 2, 2}},
		{"more workers than points", 3, 8, []int64{1, 1, 1}},
		{"single", 7, 1, []int64{7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Split(tc.points, tc.workers)
			assert.Equal(t, tc.want, got)

			var sum int64
			for _, n := range got {
				sum += n
			}
			assert.Equal(t, tc.points, sum)
		})
	}

	assert.Nil(t, Split(0, 4))
	assert.Nil(t, Split(10, 0))
}

func TestEstimateSequential(t *testing.T) {
	pi, err := EstimateSequential(testPoints, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, pi, tolerance)

	_, err = EstimateSequential(0, nil)
	assert.ErrorIs(t, err, ErrNoPoints)
}

func TestEstimateParallel(t *testing.T) {
	pi, err := EstimateParallel(context.Background(), testPoints, 4)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, pi, tolerance)

	_, err = EstimateParallel(context.Background(), testPoints, 0)
	assert.ErrorIs(t, err, ErrNoWorkers)
}

func TestEstimateShared(t *testing.T) {
	pi, err := EstimateShared(context.Background(), testPoints, 4)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, pi, tolerance)

	_, err = EstimateShared(context.Background(), -1, 4)
	assert.ErrorIs(t, err, ErrNoPoints)
}

func TestEstimateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := EstimateParallel(ctx, testPoints, 4)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = EstimateShared(ctx, testPoints, 4)
	assert.ErrorIs(t, err, context.Canceled)
}
