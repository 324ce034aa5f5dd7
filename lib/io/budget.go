package iolib

import "strconv"

// Budget is the remaining read-call allowance of a [ThrottledReader].
// It is either unlimited, or capped with some non-negative number of
// calls left. The zero value is unlimited.
type Budget struct {
	capped    bool
	remaining uint
}

// Unlimited returns a budget that never runs out.
func Unlimited() Budget { return Budget{} }

// Limit returns a budget with n calls left.
// Limit(0) is valid: it is a budget that is already spent.
func Limit(n uint) Budget { return Budget{capped: true, remaining: n} }

// Capped reports whether the budget has a cap at all.
func (b Budget) Capped() bool { return b.capped }

// Remaining returns the number of calls left.
// ok is false when the budget is unlimited, in which case n is meaningless.
func (b Budget) Remaining() (n uint, ok bool) { return b.remaining, b.capped }

// Exhausted reports whether the budget is capped and fully spent.
func (b Budget) Exhausted() bool { return b.capped && b.remaining == 0 }

func (b Budget) String() string {
	if !b.capped {
		return "unlimited"
	}
	return "limited(" + strconv.FormatUint(uint64(b.remaining), 10) + ")"
}

// consume spends one call. It reports false when the budget is already
// spent, leaving the budget unchanged.
func (b *Budget) consume() bool {
	if !b.capped {
		return true
	}
	if b.remaining == 0 {
		return false
	}
	b.remaining--
	return true
}
