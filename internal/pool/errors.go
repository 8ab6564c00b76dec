package pool

import "github.com/pkg/errors"

var (
	// ErrInvalidAmount is returned when an amount is nil, zero, or negative,
	// or when a holder address is empty.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrRatioMismatch is returned when a non-initial deposit does not match
	// the pool's current reserve ratio exactly.
	ErrRatioMismatch = errors.New("deposit ratio mismatch")

	// ErrInsufficientShares is returned when a withdrawal asks for more shares
	// than the holder owns.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrEmptyPool is returned when a swap or price query hits a pool with
	// zero reserves.
	ErrEmptyPool = errors.New("pool not seeded")

	// ErrAmountTooSmall is returned when integer rounding zeroes out a
	// computed result: a share mint, a withdrawal leg, or a swap output.
	// Zero-value operations are rejected, never executed as no-ops.
	ErrAmountTooSmall = errors.New("amount too small")

	// ErrTransferFailed is returned when the asset ledger declines a transfer.
	// The ledger's own error is attached alongside it.
	ErrTransferFailed = errors.New("asset transfer failed")
)
