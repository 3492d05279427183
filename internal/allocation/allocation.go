// Package allocation implements the pure share computations of the ledger:
// display weights and money splits. Everything here is integer arithmetic
// over basis points; no state, no I/O. Callers decide what to do with the
// results; this package never touches balances.
package allocation

import (
	apperrors "hearth/internal/errors"
)

// TotalBPS is one whole expressed in basis points.
const TotalBPS = 10000

// EqualWeight returns the display allocation weight assigned to a member of
// a household with activeMembers active members: floor(10000/count).
// When 10000 does not divide evenly the remainder basis points are an
// accepted rounding loss; they are never assigned to any single member.
// This weight is display metadata only. Money splits use member counts or
// explicit weights, never this value (the two divisions can disagree at the
// rounding boundary).
func EqualWeight(activeMembers int) (int, error) {
	if activeMembers <= 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "household has no active members")
	}
	return TotalBPS / activeMembers, nil
}

// SplitEqual divides amount equally among members, giving each
// floor(amount/len(members)). The remainder (amount mod n) is deliberately
// left unassigned; the Expense Ledger's policy is that it stays with the
// payer, who is never posted a debt to themselves.
func SplitEqual(amount int64, members []string) (map[string]int64, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if len(members) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no members to split among")
	}

	share := amount / int64(len(members))
	shares := make(map[string]int64, len(members))
	for _, m := range members {
		shares[m] = share
	}
	return shares, nil
}

// SplitCustom divides amount by explicit per-member weights, giving each
// member floor(amount * bps / 10000). The weights must sum to exactly
// 10000 basis points and each must lie in [0, 10000]; otherwise the split
// is rejected before any share is computed.
func SplitCustom(amount int64, weights map[string]int) (map[string]int64, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}

	shares := make(map[string]int64, len(weights))
	for member, bps := range weights {
		shares[member] = amount * int64(bps) / TotalBPS
	}
	return shares, nil
}

// ValidateWeights checks that every weight lies in [0, 10000] and that the
// weights sum to exactly 10000 basis points.
func ValidateWeights(weights map[string]int) error {
	if len(weights) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidAllocation, "no allocation entries provided")
	}

	sum := 0
	for _, bps := range weights {
		if bps < 0 || bps > TotalBPS {
			return apperrors.WithMessage(apperrors.ErrInvalidAllocation, "allocation must be between 0 and 10000 basis points")
		}
		sum += bps
	}
	if sum != TotalBPS {
		return apperrors.WithMessage(apperrors.ErrInvalidAllocation, "allocations must sum to exactly 10000 basis points")
	}
	return nil
}
