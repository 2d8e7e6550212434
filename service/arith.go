package service

import (
	"math"
	"math/bits"
)

// bpsDenominator is the basis-point scale: 10000 bps = 100%.
const bpsDenominator = 10000

// checkedAdd returns a+b, or ErrAmountOverflow if the sum does not fit in
// an int64. Both operands must be non-negative.
func checkedAdd(a, b int64) (int64, error) {
	if a > math.MaxInt64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// checkedDouble returns 2*a, or ErrAmountOverflow.
func checkedDouble(a int64) (int64, error) {
	return checkedAdd(a, a)
}

// checkedAddVotes returns total+add for vote tallies, or ErrVoteOverflow.
func checkedAddVotes(total, add int64) (int64, error) {
	if total > math.MaxInt64-add {
		return 0, ErrVoteOverflow
	}
	return total + add, nil
}

// applyBps returns floor(amount*bps/10000) using a 128-bit intermediate
// product, so the multiply cannot overflow before the divide. Requires
// 0 <= amount and 0 <= bps <= 10000; the quotient then always fits.
func applyBps(amount, bps int64) int64 {
	hi, lo := bits.Mul64(uint64(amount), uint64(bps))
	quo, _ := bits.Div64(hi, lo, bpsDenominator)
	return int64(quo)
}

// SettlementAmounts computes the one-time stake-pool split for a debate:
// pool = stake*2, fee = floor(pool*feeBps/10000), payout = pool - fee.
// payout + fee == pool exactly; no value is created or destroyed.
func SettlementAmounts(stakeAmount, feeBps int64) (payout, fee int64, err error) {
	pool, err := checkedDouble(stakeAmount)
	if err != nil {
		return 0, 0, err
	}
	fee = applyBps(pool, feeBps)
	return pool - fee, fee, nil
}

// BetPayout computes the fixed-odds claim payout for a winning bet:
// floor(amount*2*(10000-feeBps)/10000). The formula pays every winning bet
// as if matched 1:1 by a losing counterpart; it does not consult the real
// balance of money on each side, so escrow can run dry under imbalance.
// Callers must treat a failed escrow debit as the insolvency signal.
func BetPayout(amount, feeBps int64) (int64, error) {
	doubled, err := checkedDouble(amount)
	if err != nil {
		return 0, err
	}
	return applyBps(doubled, bpsDenominator-feeBps), nil
}
