package iolib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudget(t *testing.T) {
	testcases := []struct {
		desc      string
		budget    Budget
		capped    bool
		remaining uint
		exhausted bool
		str       string
	}{
		{
			desc:   "unlimited",
			budget: Unlimited(),
			str:    "unlimited",
		},
		{
			desc:   "zero value is unlimited",
			budget: Budget{},
			str:    "unlimited",
		},
		{
			desc:      "limited",
			budget:    Limit(3),
			capped:    true,
			remaining: 3,
			str:       "limited(3)",
		},
		{
			desc:      "limited zero is exhausted",
			budget:    Limit(0),
			capped:    true,
			exhausted: true,
			str:       "limited(0)",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.capped, tc.budget.Capped())
			n, ok := tc.budget.Remaining()
			assert.Equal(t, tc.capped, ok)
			assert.Equal(t, tc.remaining, n)
			assert.Equal(t, tc.exhausted, tc.budget.Exhausted())
			assert.Equal(t, tc.str, tc.budget.String())
		})
	}
}
