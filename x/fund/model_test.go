package fund

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeetsThreshold(t *testing.T) {
	cases := map[string]struct {
		scores []uint64
		want   bool
	}{
		"average exactly at threshold": {scores: []uint64{70, 80}, want: true},
		"average just below threshold": {scores: []uint64{70, 79}, want: false},
		"single perfect review":        {scores: []uint64{100}, want: true},
		"single review at threshold":   {scores: []uint64{75}, want: true},
		"single review below":          {scores: []uint64{74}, want: false},
		"no reviews":                   {scores: nil, want: false},
		"many reviews":                 {scores: []uint64{75, 75, 75, 76, 74}, want: true},
		"fraction below threshold":     {scores: []uint64{75, 75, 74}, want: false},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var sum uint64
			for _, s := range tc.scores {
				sum += s
			}
			assert.Equal(t, tc.want, MeetsThreshold(sum, uint64(len(tc.scores))))
		})
	}

	// no overflow with the largest aggregates
	assert.True(t, MeetsThreshold(^uint64(0), 1))
	assert.False(t, MeetsThreshold(74, ^uint64(0)))
}

func TestGuard(t *testing.T) {
	var g Guard
	assert.False(t, g.Held())
	assert.True(t, g.Acquire())
	assert.True(t, g.Held())
	assert.False(t, g.Acquire())
	g.Release()
	assert.False(t, g.Held())
	assert.True(t, g.Acquire())
}

func TestPoolAddress(t *testing.T) {
	assert.NoError(t, PoolAddress.Validate())
}
